package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xeniatay/venture-adventure/internal/model"
)

const leaderboardKey = "leaderboard:entries"

// CachedStore wraps a primary Store with a Redis read-through cache.
// Writes go to the primary store and refresh the cache; reads check
// Redis first then fall back to the primary.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

func (s *CachedStore) ListEntries(ctx context.Context) ([]model.LeaderboardEntry, error) {
	// Try cache.
	data, err := s.rdb.Get(ctx, leaderboardKey).Bytes()
	if err == nil {
		var entries []model.LeaderboardEntry
		if json.Unmarshal(data, &entries) == nil {
			return entries, nil
		}
	}

	// Cache miss: read from primary.
	entries, err := s.primary.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheEntries(ctx, entries)
	return entries, nil
}

func (s *CachedStore) ReplaceEntries(ctx context.Context, entries []model.LeaderboardEntry) error {
	if err := s.primary.ReplaceEntries(ctx, entries); err != nil {
		return err
	}
	s.cacheEntries(ctx, entries)
	return nil
}

func (s *CachedStore) cacheEntries(ctx context.Context, entries []model.LeaderboardEntry) {
	if data, err := json.Marshal(entries); err == nil {
		s.rdb.Set(ctx, leaderboardKey, data, s.ttl)
	}
}
