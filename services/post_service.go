package services

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/models"
)

type CreatePostInput struct {
	Title       string
	Description string
	Photo       string
	Tags        []string
	CategoryID  *uint
}

type UpdatePostInput struct {
	Title       string
	Description string
	Photo       string
	Tags        []string
	CategoryID  *uint
}

// PostService owns post lifecycle and the block-aware listing filter.
// Post writes trigger an engagement recompute for the author so the
// derived award/inactivity fields track post history.
type PostService struct {
	DB         *gorm.DB
	Engagement *EngagementService
}

func NewPostService(db *gorm.DB, engagement *EngagementService) *PostService {
	return &PostService{DB: db, Engagement: engagement}
}

// Create stores a new post for the author. Suspended authors cannot post.
func (s *PostService) Create(ctx context.Context, authorID uint, in CreatePostInput) (*models.Post, error) {
	var author models.User
	if err := s.DB.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if author.IsBlocked {
		return nil, ErrAccountSuspended
	}

	if in.CategoryID != nil {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Category{}).
			Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrCategoryNotFound
		}
	}

	post := models.Post{
		Title:       in.Title,
		Description: in.Description,
		Photo:       in.Photo,
		Tags:        pq.StringArray(in.Tags),
		UserID:      authorID,
		CategoryID:  in.CategoryID,
	}
	if err := s.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}

	s.recompute(ctx, authorID)
	return &post, nil
}

// Get loads a post with its author, category and comments.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Comments").
		Preload("Comments.User").
		Preload("Reactions").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List returns posts visible to the viewer, newest first. Posts whose
// author has blocked the viewer are excluded.
func (s *PostService) List(ctx context.Context, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.WithContext(ctx).
		Where("posts.user_id NOT IN (SELECT blocker_user_id FROM blocks WHERE blocked_user_id = ?)", viewerID).
		Preload("User").
		Preload("Category").
		Preload("Reactions").
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListByCategory is List narrowed to one category.
func (s *PostService) ListByCategory(ctx context.Context, viewerID, categoryID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.WithContext(ctx).
		Where("posts.category_id = ?", categoryID).
		Where("posts.user_id NOT IN (SELECT blocker_user_id FROM blocks WHERE blocked_user_id = ?)", viewerID).
		Preload("User").
		Preload("Category").
		Preload("Reactions").
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Update modifies a post; only the owner may update it.
func (s *PostService) Update(ctx context.Context, actorID, postID uint, in UpdatePostInput) (*models.Post, error) {
	var post models.Post
	if err := s.DB.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Description != "" {
		post.Description = in.Description
	}
	if in.Photo != "" {
		post.Photo = in.Photo
	}
	if in.Tags != nil {
		post.Tags = pq.StringArray(in.Tags)
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}

	if err := s.DB.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post; the owner or an admin may delete it.
func (s *PostService) Delete(ctx context.Context, actorID uint, actorIsAdmin bool, postID uint) error {
	var post models.Post
	if err := s.DB.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.UserID != actorID && !actorIsAdmin {
		return ErrForbidden
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostView{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return consistency("post delete", err)
	}

	s.recompute(ctx, post.UserID)
	return nil
}

// recompute is best effort after a post write; the reconciler repairs
// any drift if it fails here.
func (s *PostService) recompute(ctx context.Context, authorID uint) {
	if err := s.Engagement.Recompute(ctx, authorID); err != nil {
		logging.L().Warn().Err(err).Uint("user_id", authorID).Msg("engagement recompute after post write failed")
	}
}
