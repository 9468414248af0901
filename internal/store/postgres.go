package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// PostgresStore implements Store using PostgreSQL, for deployments where
// the leaderboard is shared. Monetary values are stored as NUMERIC for
// exact decimal precision; allocations as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate ensures the leaderboard table exists.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			final_value NUMERIC NOT NULL,
			cagr        NUMERIC NOT NULL,
			allocation  JSONB NOT NULL,
			timestamp   TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (s *PostgresStore) ListEntries(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, final_value::TEXT, cagr::TEXT, allocation, timestamp
		 FROM leaderboard_entries
		 ORDER BY final_value DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		var finalS, cagrS string
		var allocRaw []byte
		if err := rows.Scan(&e.ID, &e.Name, &finalS, &cagrS, &allocRaw, &e.Timestamp); err != nil {
			return nil, err
		}
		e.FinalValue, _ = decimal.NewFromString(finalS)
		e.CAGR, _ = decimal.NewFromString(cagrS)
		if err := json.Unmarshal(allocRaw, &e.Allocation); err != nil {
			return nil, fmt.Errorf("decode allocation for entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) ReplaceEntries(ctx context.Context, entries []model.LeaderboardEntry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return err
	}
	for _, e := range entries {
		alloc, err := json.Marshal(e.Allocation)
		if err != nil {
			return fmt.Errorf("encode allocation for entry %s: %w", e.ID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO leaderboard_entries (id, name, final_value, cagr, allocation, timestamp)
			 VALUES ($1, $2, $3::NUMERIC, $4::NUMERIC, $5, $6)`,
			e.ID, e.Name, e.FinalValue.String(), e.CAGR.String(), alloc, e.Timestamp,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
