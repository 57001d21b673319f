package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/models"
)

func TestAwardForPostCount(t *testing.T) {
	cases := []struct {
		posts int64
		want  string
	}{
		{0, models.AwardBronze},
		{9, models.AwardBronze},
		{10, models.AwardBronze},
		{11, models.AwardSilver},
		{20, models.AwardSilver},
		{21, models.AwardGold},
		{100, models.AwardGold},
	}
	for _, tc := range cases {
		if got := AwardForPostCount(tc.posts); got != tc.want {
			t.Errorf("AwardForPostCount(%d) = %s, want %s", tc.posts, got, tc.want)
		}
	}
}

func TestRecomputeDerivesAward(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	for i := 0; i < 11; i++ {
		createPost(t, db, alice.ID)
	}

	if err := svc.Recompute(ctx, alice.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	got := reloadUser(t, db, alice.ID)
	if got.UserAward != models.AwardSilver {
		t.Fatalf("expected Silver at 11 posts, got %s", got.UserAward)
	}
	if got.LastPostAt == nil {
		t.Fatal("expected last post date to be set")
	}
	if got.IsInactive || got.IsBlocked {
		t.Fatal("recently posting user must be active and unblocked")
	}
}

func TestRecomputeWithNoPosts(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	if err := svc.Recompute(ctx, alice.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	got := reloadUser(t, db, alice.ID)
	if got.UserAward != models.AwardBronze {
		t.Fatalf("expected Bronze with no posts, got %s", got.UserAward)
	}
	if got.LastPostAt != nil {
		t.Fatal("expected no last post date")
	}
	if got.IsInactive || got.IsBlocked {
		t.Fatal("a user who never posted is not inactive")
	}
}

func TestRecomputeSuspendsInactiveUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice.ID)
	backdatePost(t, db, post.ID, time.Now().Add(-31*24*time.Hour))

	if err := svc.Recompute(ctx, alice.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got := reloadUser(t, db, alice.ID)
	if !got.IsInactive || !got.IsBlocked {
		t.Fatal("expected user with month-old last post to be suspended as inactive")
	}

	// A fresh post lifts the suspension on the next recompute.
	createPost(t, db, alice.ID)
	if err := svc.Recompute(ctx, alice.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got = reloadUser(t, db, alice.ID)
	if got.IsInactive || got.IsBlocked {
		t.Fatal("expected fresh post to clear the inactivity suspension")
	}
}

func TestRecomputeKeepsAdminSuspension(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createPost(t, db, alice.ID)

	if err := db.Model(&models.User{}).Where("id = ?", alice.ID).
		Updates(map[string]interface{}{"admin_blocked": true, "is_blocked": true}).Error; err != nil {
		t.Fatalf("set admin block: %v", err)
	}

	if err := svc.Recompute(ctx, alice.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	got := reloadUser(t, db, alice.ID)
	if !got.IsBlocked {
		t.Fatal("recompute must not lift an admin suspension")
	}
	if got.IsInactive {
		t.Fatal("an admin-suspended active user is still not inactive")
	}
}

func TestProfileStatsCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, nil)
	rel := NewRelationshipService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	createPost(t, db, alice.ID)
	createPost(t, db, alice.ID)
	if err := rel.Follow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := rel.Follow(ctx, carol.ID, alice.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := rel.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := rel.RecordProfileView(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("record view: %v", err)
	}

	stats, err := svc.ProfileStats(ctx, alice.ID)
	if err != nil {
		t.Fatalf("profile stats: %v", err)
	}
	if stats.Posts != 2 || stats.Followers != 2 || stats.Following != 1 || stats.Viewers != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func backdatePost(t *testing.T, db *gorm.DB, postID uint, createdAt time.Time) {
	t.Helper()
	if err := db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate post: %v", err)
	}
}
