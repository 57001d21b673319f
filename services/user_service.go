package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/store"
)

type UpdateProfileInput struct {
	FirstName    string
	LastName     string
	Email        string
	Bio          string
	ProfilePhoto string
}

// UserService covers user record lifecycle outside of auth: profile
// reads, profile updates, account deletion and admin suspension.
type UserService struct {
	DB    *gorm.DB
	Stats store.StatsStore // optional, may be nil
}

func NewUserService(db *gorm.DB, stats store.StatsStore) *UserService {
	return &UserService{DB: db, Stats: stats}
}

// Get loads a user by id. Reading a user has no side effects; the
// derived fields were persisted by the engagement service.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// UpdateProfile applies the provided profile fields. A changed email
// must not collide with another account.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrAccountSuspended
	}

	if in.Email != "" && in.Email != user.Email {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", in.Email, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		user.Email = in.Email
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.ProfilePhoto != "" {
		user.ProfilePhoto = in.ProfilePhoto
	}

	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword stores a new password hash for the user.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the account and everything it owns in one transaction:
// posts, comments, categories, reactions, views and graph edges. A
// partial cascade must never survive, so any failure rolls back and is
// reported as a consistency error.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostView{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PostView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_user_id = ? OR following_user_id = ?", userID, userID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blocker_user_id = ? OR blocked_user_id = ?", userID, userID).
			Delete(&models.Block{}).Error; err != nil {
			return err
		}
		if err := tx.Where("viewer_user_id = ? OR owner_user_id = ?", userID, userID).
			Delete(&models.ProfileView{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return consistency("account delete", err)
	}

	if s.Stats != nil {
		// Best effort; the entry would age out by TTL anyway.
		_ = s.Stats.Invalidate(ctx, userID)
	}
	return nil
}

// AdminBlock suspends an account. The suspension is sticky: the
// engagement derivation will not lift it when the user looks active.
func (s *UserService) AdminBlock(ctx context.Context, userID uint) error {
	return s.setAdminBlock(ctx, userID, true)
}

// AdminUnblock lifts an admin suspension. The next engagement recompute
// decides whether the user stays unblocked.
func (s *UserService) AdminUnblock(ctx context.Context, userID uint) error {
	return s.setAdminBlock(ctx, userID, false)
}

func (s *UserService) setAdminBlock(ctx context.Context, userID uint, blocked bool) error {
	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"admin_blocked": blocked,
			"is_blocked":    blocked,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
