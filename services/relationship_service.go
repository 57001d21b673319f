package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/store"
)

// RelationshipService owns the social graph: follow edges, block lists
// and profile viewers. Each mutation validates its precondition and
// applies inside a single transaction; the composite unique indexes on
// the edge tables make double-application a constraint violation rather
// than silent corruption.
type RelationshipService struct {
	DB    *gorm.DB
	Stats store.StatsStore // optional count cache, may be nil
}

func NewRelationshipService(db *gorm.DB, stats store.StatsStore) *RelationshipService {
	return &RelationshipService{DB: db, Stats: stats}
}

// Follow adds a follow edge from actor to target.
func (s *RelationshipService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfFollow
	}
	if err := s.ensureUsers(ctx, actorID, targetID); err != nil {
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_user_id = ? AND following_user_id = ?", actorID, targetID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}
		if err := tx.Create(&models.Follow{
			FollowerUserID:  actorID,
			FollowingUserID: targetID,
		}).Error; err != nil {
			// A concurrent follow between the same pair lands here.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFollowing
			}
			return consistency("follow", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx, actorID, targetID)
	return nil
}

// Unfollow removes the follow edge from actor to target.
func (s *RelationshipService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if err := s.ensureUsers(ctx, actorID, targetID); err != nil {
		return err
	}

	result := s.DB.WithContext(ctx).
		Where("follower_user_id = ? AND following_user_id = ?", actorID, targetID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}

	s.invalidateStats(ctx, actorID, targetID)
	return nil
}

// Block adds target to actor's block list. Existing follow edges are
// left in place; blocking only hides the blocker's content.
func (s *RelationshipService) Block(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfBlock
	}
	if err := s.ensureUsers(ctx, actorID, targetID); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Block{}).
			Where("blocker_user_id = ? AND blocked_user_id = ?", actorID, targetID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyBlocked
		}
		if err := tx.Create(&models.Block{
			BlockerUserID: actorID,
			BlockedUserID: targetID,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBlocked
			}
			return consistency("block", err)
		}
		return nil
	})
}

// Unblock removes target from actor's block list.
func (s *RelationshipService) Unblock(ctx context.Context, actorID, targetID uint) error {
	if err := s.ensureUsers(ctx, actorID, targetID); err != nil {
		return err
	}

	result := s.DB.WithContext(ctx).
		Where("blocker_user_id = ? AND blocked_user_id = ?", actorID, targetID).
		Delete(&models.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotBlocked
	}
	return nil
}

// RecordProfileView appends the viewer to the owner's viewer list,
// at most once per distinct viewer.
func (s *RelationshipService) RecordProfileView(ctx context.Context, viewerID, ownerID uint) error {
	if err := s.ensureUsers(ctx, viewerID, ownerID); err != nil {
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProfileView{}).
			Where("viewer_user_id = ? AND owner_user_id = ?", viewerID, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyViewed
		}
		if err := tx.Create(&models.ProfileView{
			ViewerUserID: viewerID,
			OwnerUserID:  ownerID,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyViewed
			}
			return consistency("record profile view", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	return nil
}

// Followers returns the users following userID.
func (s *RelationshipService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_user_id = users.id").
		Where("follows.following_user_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// Following returns the users userID follows.
func (s *RelationshipService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Joins("JOIN follows ON follows.following_user_id = users.id").
		Where("follows.follower_user_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// Viewers returns who viewed userID's profile, oldest first.
func (s *RelationshipService) Viewers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Joins("JOIN profile_views ON profile_views.viewer_user_id = users.id").
		Where("profile_views.owner_user_id = ?", userID).
		Order("profile_views.id ASC").
		Find(&users).Error
	return users, err
}

// BlockedUsers returns the users userID has blocked.
func (s *RelationshipService) BlockedUsers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Joins("JOIN blocks ON blocks.blocked_user_id = users.id").
		Where("blocks.blocker_user_id = ?", userID).
		Order("blocks.created_at DESC").
		Find(&users).Error
	return users, err
}

// IsBlocking reports whether blocker has blocked target.
func (s *RelationshipService) IsBlocking(ctx context.Context, blockerID, targetID uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_user_id = ? AND blocked_user_id = ?", blockerID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsFollowing reports whether follower follows target.
func (s *RelationshipService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RelationshipService) ensureUsers(ctx context.Context, ids ...uint) error {
	distinct := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id IN ?", distinct).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(distinct)) {
		return ErrUserNotFound
	}
	return nil
}

// invalidateStats is best effort; a stale cache entry ages out by TTL.
func (s *RelationshipService) invalidateStats(ctx context.Context, userIDs ...uint) {
	if s.Stats == nil {
		return
	}
	if err := s.Stats.Invalidate(ctx, userIDs...); err != nil {
		logging.L().Warn().Err(err).Uints("user_ids", userIDs).Msg("failed to invalidate profile stats")
	}
}
