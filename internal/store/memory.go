package store

import (
	"context"
	"sync"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// MemoryStore implements Store with an in-memory slice. Used for testing
// and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu      sync.RWMutex
	entries []model.LeaderboardEntry
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListEntries(_ context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to avoid external mutation.
	out := make([]model.LeaderboardEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) ReplaceEntries(_ context.Context, entries []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]model.LeaderboardEntry, len(entries))
	copy(s.entries, entries)
	return nil
}
