package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/models"
)

// ReactionService toggles likes, dislikes and views on posts.
type ReactionService struct {
	DB *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{DB: db}
}

// Like toggles the actor's like on a post. Returns whether the like is
// present after the call.
func (s *ReactionService) Like(ctx context.Context, actorID, postID uint) (bool, error) {
	return s.toggle(ctx, actorID, postID, models.ReactionLike)
}

// Dislike toggles the actor's dislike on a post. Returns whether the
// dislike is present after the call.
func (s *ReactionService) Dislike(ctx context.Context, actorID, postID uint) (bool, error) {
	return s.toggle(ctx, actorID, postID, models.ReactionDislike)
}

// toggle enforces mutual exclusion between the two reaction kinds.
// It clears every existing reaction row for the (post, user) pair before
// writing the new state, which also repairs any pair that a faulty
// transition left holding both kinds.
func (s *ReactionService) toggle(ctx context.Context, actorID, postID uint, kind string) (bool, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return false, err
	}

	var active bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Reaction
		if err := tx.Where("post_id = ? AND user_id = ?", postID, actorID).
			Find(&existing).Error; err != nil {
			return err
		}

		hadSameKind := false
		for _, r := range existing {
			if r.Kind == kind {
				hadSameKind = true
			}
		}

		if len(existing) > 0 {
			if err := tx.Where("post_id = ? AND user_id = ?", postID, actorID).
				Delete(&models.Reaction{}).Error; err != nil {
				return consistency("reaction toggle", err)
			}
		}

		// Reacting with the kind already present toggles it off.
		if hadSameKind {
			active = false
			return nil
		}

		if err := tx.Create(&models.Reaction{
			PostID: postID,
			UserID: actorID,
			Kind:   kind,
		}).Error; err != nil {
			return consistency("reaction toggle", err)
		}
		active = true
		return nil
	})
	return active, err
}

// RecordView adds the viewer to the post's view list. Views accumulate
// once per distinct viewer and are never removed.
func (s *ReactionService) RecordView(ctx context.Context, viewerID, postID uint) error {
	if err := s.ensurePost(ctx, postID); err != nil {
		return err
	}

	view := models.PostView{PostID: postID, UserID: viewerID}
	err := s.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, viewerID).
		FirstOrCreate(&view).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent first views race; either row is fine.
		return nil
	}
	return err
}

func (s *ReactionService) ensurePost(ctx context.Context, postID uint) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}
	return nil
}
