package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quillhub/api-go/models"
)

func TestLikeToggles(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice.ID)

	active, err := svc.Like(ctx, bob.ID, post.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !active {
		t.Fatal("expected like to be active after first call")
	}
	if n := countRows(t, db, &models.Reaction{}, "post_id = ? AND kind = ?", post.ID, models.ReactionLike); n != 1 {
		t.Fatalf("expected one like row, got %d", n)
	}

	active, err = svc.Like(ctx, bob.ID, post.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if active {
		t.Fatal("expected second like to toggle the like off")
	}
	if n := countRows(t, db, &models.Reaction{}, "post_id = ?", post.ID); n != 0 {
		t.Fatalf("expected no reaction rows after toggle, got %d", n)
	}
}

func TestLikeAndDislikeAreExclusive(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice.ID)

	if _, err := svc.Like(ctx, bob.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	active, err := svc.Dislike(ctx, bob.ID, post.ID)
	if err != nil {
		t.Fatalf("dislike: %v", err)
	}
	if !active {
		t.Fatal("expected dislike to be active")
	}

	var reactions []models.Reaction
	if err := db.Where("post_id = ? AND user_id = ?", post.ID, bob.ID).Find(&reactions).Error; err != nil {
		t.Fatalf("load reactions: %v", err)
	}
	if len(reactions) != 1 {
		t.Fatalf("expected exactly one reaction row, got %d", len(reactions))
	}
	if reactions[0].Kind != models.ReactionDislike {
		t.Fatalf("expected the remaining reaction to be a dislike, got %s", reactions[0].Kind)
	}
}

func TestReactionUnknownPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")

	if _, err := svc.Like(ctx, alice.ID, 9999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if err := svc.RecordView(ctx, alice.ID, 9999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestRecordViewCountsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	post := createPost(t, db, alice.ID)

	for i := 0; i < 3; i++ {
		if err := svc.RecordView(ctx, bob.ID, post.ID); err != nil {
			t.Fatalf("record view: %v", err)
		}
	}
	if err := svc.RecordView(ctx, carol.ID, post.ID); err != nil {
		t.Fatalf("record view: %v", err)
	}

	if n := countRows(t, db, &models.PostView{}, "post_id = ?", post.ID); n != 2 {
		t.Fatalf("expected one view per distinct viewer, got %d rows", n)
	}
}
