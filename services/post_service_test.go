package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/models"
)

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(db, NewEngagementService(db, nil))
}

func TestCreatePostUpdatesEngagement(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")

	post, err := svc.Create(ctx, alice.ID, CreatePostInput{
		Title:       "first",
		Description: "hello",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected post to be persisted")
	}

	got := reloadUser(t, db, alice.ID)
	if got.LastPostAt == nil {
		t.Fatal("expected creating a post to set the author's last post date")
	}
	if got.UserAward != models.AwardBronze {
		t.Fatalf("expected Bronze after one post, got %s", got.UserAward)
	}
}

func TestCreatePostSuspendedAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	if err := db.Model(&models.User{}).Where("id = ?", alice.ID).
		Update("is_blocked", true).Error; err != nil {
		t.Fatalf("suspend: %v", err)
	}

	_, err := svc.Create(ctx, alice.ID, CreatePostInput{Title: "x", Description: "y"})
	if !errors.Is(err, ErrAccountSuspended) {
		t.Fatalf("expected ErrAccountSuspended, got %v", err)
	}
}

func TestCreatePostUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	missing := uint(9999)

	_, err := svc.Create(ctx, alice.ID, CreatePostInput{
		Title:       "x",
		Description: "y",
		CategoryID:  &missing,
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListHidesBlockingAuthors(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	rel := NewRelationshipService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	alicePost := createPost(t, db, alice.ID)
	carolPost := createPost(t, db, carol.ID)

	if err := rel.Block(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("block: %v", err)
	}

	// Bob no longer sees alice's posts.
	posts, err := svc.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != carolPost.ID {
		t.Fatalf("expected bob to see only carol's post, got %d posts", len(posts))
	}

	// Carol is unaffected.
	posts, err = svc.List(ctx, carol.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected carol to see both posts, got %d", len(posts))
	}

	// The blocker still sees everything, including their own posts.
	posts, err = svc.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, p := range posts {
		if p.ID == alicePost.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected alice to still see her own post")
	}
}

func TestListByCategoryHidesBlockingAuthors(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	rel := NewRelationshipService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	category := models.Category{Title: "travel", UserID: alice.ID}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	other := models.Category{Title: "food", UserID: alice.ID}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	for _, p := range []models.Post{
		{Title: "by alice", Description: "x", UserID: alice.ID, CategoryID: &category.ID},
		{Title: "by carol", Description: "x", UserID: carol.ID, CategoryID: &category.ID},
		{Title: "off topic", Description: "x", UserID: carol.ID, CategoryID: &other.ID},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	if err := rel.Block(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("block: %v", err)
	}

	posts, err := svc.ListByCategory(ctx, bob.ID, category.ID)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(posts) != 1 || posts[0].UserID != carol.ID {
		t.Fatalf("expected only carol's in-category post for bob, got %d posts", len(posts))
	}

	// The viewer who is not blocked sees both posts in the category.
	posts, err = svc.ListByCategory(ctx, carol.ID, category.ID)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected both in-category posts for carol, got %d", len(posts))
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice.ID)

	if _, err := svc.Update(ctx, bob.ID, post.ID, UpdatePostInput{Title: "hijack"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, alice.ID, post.ID, UpdatePostInput{Title: "renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("expected updated title, got %s", updated.Title)
	}
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice.ID)

	if err := db.Create(&models.Comment{Description: "nice", PostID: post.ID, UserID: bob.ID}).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := reactions.Like(ctx, bob.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := reactions.RecordView(ctx, bob.ID, post.ID); err != nil {
		t.Fatalf("record view: %v", err)
	}

	if err := svc.Delete(ctx, bob.ID, false, post.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(ctx, alice.ID, false, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
	if n := countRows(t, db, &models.Comment{}, "post_id = ?", post.ID); n != 0 {
		t.Fatalf("expected comments removed with the post, got %d", n)
	}
	if n := countRows(t, db, &models.Reaction{}, "post_id = ?", post.ID); n != 0 {
		t.Fatalf("expected reactions removed with the post, got %d", n)
	}
	if n := countRows(t, db, &models.PostView{}, "post_id = ?", post.ID); n != 0 {
		t.Fatalf("expected views removed with the post, got %d", n)
	}
}

func TestDeletePostAsAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice.ID)

	admin := createUser(t, db, "admin")
	if err := svc.Delete(ctx, admin.ID, true, post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after admin delete, got %v", err)
	}
}
