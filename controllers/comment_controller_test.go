package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/models"
)

func TestCreateCommentSuspendedUser(t *testing.T) {
	db := newTestDB(t)
	cc := NewCommentController(db)

	author := createUser(t, db, "author", false)
	suspended := createUser(t, db, "suspended", true)

	post := models.Post{Title: "a post", Description: "text", UserID: author.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	c, w := newAuthedContext(t, suspended, `{"description":"drive-by"}`)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	cc.CreateComment(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a suspended commenter, got %d", w.Code)
	}
	var count int64
	if err := db.Model(&models.Comment{}).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no comment rows from a suspended user, got %d", count)
	}
}

func TestCreateCommentActiveUser(t *testing.T) {
	db := newTestDB(t)
	cc := NewCommentController(db)

	author := createUser(t, db, "author", false)
	reader := createUser(t, db, "reader", false)

	post := models.Post{Title: "a post", Description: "text", UserID: author.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	c, w := newAuthedContext(t, reader, `{"description":"nice one"}`)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	cc.CreateComment(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	if err := db.Model(&models.Comment{}).Where("user_id = ?", reader.ID).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one comment row, got %d", count)
	}
}
