package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	profileStatsKeyPrefix = "profile:stats:"
	profileStatsTTL       = 10 * time.Minute
)

// RedisStatsStore implements StatsStore backed by Redis.
type RedisStatsStore struct {
	client *redis.Client
}

// NewRedisStatsStore connects to Redis and returns a stats store.
func NewRedisStatsStore(address, password string, db int) (*RedisStatsStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStatsStore{client: client}, nil
}

func profileStatsKey(userID uint) string {
	return fmt.Sprintf("%s%d", profileStatsKeyPrefix, userID)
}

// GetProfileStats returns cached stats for a user.
// Returns (stats, true, nil) on hit, (nil, false, nil) on miss.
func (s *RedisStatsStore) GetProfileStats(ctx context.Context, userID uint) (*ProfileStats, bool, error) {
	val, err := s.client.Get(ctx, profileStatsKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get profile stats: %w", err)
	}

	var stats ProfileStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, false, fmt.Errorf("decode profile stats: %w", err)
	}
	return &stats, true, nil
}

// SetProfileStats caches stats for a user with a TTL so stale entries
// age out even if invalidation is missed.
func (s *RedisStatsStore) SetProfileStats(ctx context.Context, userID uint, stats *ProfileStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode profile stats: %w", err)
	}
	if err := s.client.Set(ctx, profileStatsKey(userID), raw, profileStatsTTL).Err(); err != nil {
		return fmt.Errorf("redis set profile stats: %w", err)
	}
	return nil
}

// Invalidate drops cached stats for the given users.
func (s *RedisStatsStore) Invalidate(ctx context.Context, userIDs ...uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = profileStatsKey(id)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate profile stats: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStatsStore) Close() error {
	return s.client.Close()
}

// Ensure interface is satisfied at compile time.
var _ StatsStore = (*RedisStatsStore)(nil)
