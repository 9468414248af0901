// Package store defines the persistence interface for the leaderboard.
// Implementations include SQLite (local single-user default), PostgreSQL
// (shared deployments), Redis (read-through cache), and in-memory (for
// testing).
package store

import (
	"context"
	"sort"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// MaxEntries caps the leaderboard: it is truncated to the top entries by
// final value on every write.
const MaxEntries = 15

// Store is the leaderboard persistence interface. The board is read and
// written whole; entries are never mutated in place. Writes are
// last-writer-wins; concurrent writers are out of scope (single local
// user).
type Store interface {
	// ListEntries returns all entries sorted descending by final value.
	ListEntries(ctx context.Context) ([]model.LeaderboardEntry, error)

	// ReplaceEntries overwrites the whole board with the given entries.
	ReplaceEntries(ctx context.Context, entries []model.LeaderboardEntry) error
}

// Append performs the leaderboard lifecycle for one completed simulation:
// load, append, re-sort descending by final value, truncate to MaxEntries,
// write back. Returns the updated board.
func Append(ctx context.Context, s Store, entry model.LeaderboardEntry) ([]model.LeaderboardEntry, error) {
	entries, err := s.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FinalValue.GreaterThan(entries[j].FinalValue)
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := s.ReplaceEntries(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
