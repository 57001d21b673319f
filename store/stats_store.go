package store

import "context"

// ProfileStats are the cached per-user counters shown on a profile.
type ProfileStats struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Viewers   int64 `json:"viewers"`
}

// StatsStore caches profile counters so profile reads don't hit the
// database for every count. Implementations must treat the cache as
// advisory: a miss or error always falls back to the database.
type StatsStore interface {
	GetProfileStats(ctx context.Context, userID uint) (*ProfileStats, bool, error)
	SetProfileStats(ctx context.Context, userID uint, stats *ProfileStats) error
	Invalidate(ctx context.Context, userIDs ...uint) error
}
