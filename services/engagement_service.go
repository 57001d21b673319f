package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/store"
)

// InactivityWindow is how long a user may go without posting before
// their account is suspended as inactive.
const InactivityWindow = 30 * 24 * time.Hour

// AwardForPostCount maps a post count to an award tier. Exactly ten
// posts stays Bronze; the tier only moves above each threshold.
func AwardForPostCount(n int64) string {
	switch {
	case n > 20:
		return models.AwardGold
	case n > 10:
		return models.AwardSilver
	default:
		return models.AwardBronze
	}
}

// EngagementService keeps the derived user fields (award tier, last
// post date, inactivity suspension) consistent with post history.
// Recompute runs after post writes and from the background reconciler;
// fetching a user never mutates anything.
type EngagementService struct {
	DB    *gorm.DB
	Stats store.StatsStore // optional, may be nil
}

func NewEngagementService(db *gorm.DB, stats store.StatsStore) *EngagementService {
	return &EngagementService{DB: db, Stats: stats}
}

// Recompute re-derives award, last-post date and inactivity for one
// user and persists the result. Admin suspensions are sticky: while
// AdminBlocked is set, IsBlocked stays true no matter how active the
// user is.
func (s *EngagementService) Recompute(ctx context.Context, userID uint) error {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var postCount int64
	if err := s.DB.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ?", userID).Count(&postCount).Error; err != nil {
		return err
	}

	var lastPostAt *time.Time
	var latest models.Post
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&latest).Error
	switch {
	case err == nil:
		t := latest.CreatedAt
		lastPostAt = &t
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Users with no posts are treated as active.
	default:
		return err
	}

	inactive := lastPostAt != nil && time.Since(*lastPostAt) > InactivityWindow
	blocked := inactive
	if user.AdminBlocked {
		blocked = true
	}

	updates := map[string]interface{}{
		"user_award":   AwardForPostCount(postCount),
		"last_post_at": lastPostAt,
		"is_inactive":  inactive,
		"is_blocked":   blocked,
	}
	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Updates(updates).Error; err != nil {
		return consistency("engagement recompute", err)
	}

	s.invalidateStats(ctx, userID)
	return nil
}

// ProfileStats returns the per-user counters, served from the cache
// when possible and recounted from the database on a miss.
func (s *EngagementService) ProfileStats(ctx context.Context, userID uint) (*store.ProfileStats, error) {
	if s.Stats != nil {
		stats, found, err := s.Stats.GetProfileStats(ctx, userID)
		if err != nil {
			logging.L().Warn().Err(err).Uint("user_id", userID).Msg("stats cache read failed, falling back to db")
		}
		if found {
			return stats, nil
		}
	}

	stats, err := s.countProfileStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Stats != nil {
		if err := s.Stats.SetProfileStats(ctx, userID, stats); err != nil {
			logging.L().Warn().Err(err).Uint("user_id", userID).Msg("failed to populate stats cache")
		}
	}
	return stats, nil
}

func (s *EngagementService) countProfileStats(ctx context.Context, userID uint) (*store.ProfileStats, error) {
	db := s.DB.WithContext(ctx)
	var stats store.ProfileStats

	if err := db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&stats.Posts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Follow{}).Where("following_user_id = ?", userID).Count(&stats.Followers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Follow{}).Where("follower_user_id = ?", userID).Count(&stats.Following).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ProfileView{}).Where("owner_user_id = ?", userID).Count(&stats.Viewers).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *EngagementService) invalidateStats(ctx context.Context, userID uint) {
	if s.Stats == nil {
		return
	}
	if err := s.Stats.Invalidate(ctx, userID); err != nil {
		logging.L().Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate profile stats")
	}
}
