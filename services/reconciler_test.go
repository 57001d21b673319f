package services

import (
	"context"
	"testing"
	"time"

	"github.com/quillhub/api-go/models"
)

func TestReconcileSweepsAllUsers(t *testing.T) {
	db := newTestDB(t)
	engagement := NewEngagementService(db, nil)
	reconciler := NewReconciler(db, engagement, time.Hour)
	ctx := context.Background()

	stale := createUser(t, db, "stale")
	post := createPost(t, db, stale.ID)
	backdatePost(t, db, post.ID, time.Now().Add(-45*24*time.Hour))

	active := createUser(t, db, "active")
	for i := 0; i < 12; i++ {
		createPost(t, db, active.ID)
	}

	reconciler.Reconcile(ctx)

	got := reloadUser(t, db, stale.ID)
	if !got.IsInactive || !got.IsBlocked {
		t.Fatal("expected the reconciler to suspend a user whose last post is stale")
	}

	got = reloadUser(t, db, active.ID)
	if got.IsInactive || got.IsBlocked {
		t.Fatal("expected the active user to stay unblocked")
	}
	if got.UserAward != models.AwardSilver {
		t.Fatalf("expected the reconciler to assign Silver at 12 posts, got %s", got.UserAward)
	}
}

func TestReconcilerStops(t *testing.T) {
	db := newTestDB(t)
	reconciler := NewReconciler(db, NewEngagementService(db, nil), time.Hour)

	reconciler.Start(context.Background())
	reconciler.Stop()

	select {
	case <-reconciler.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}
