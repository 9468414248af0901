package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// SQLiteStore implements Store on a local SQLite file. This is the
// default for single-user runs: a durable local slot with no server.
// Monetary values are stored as TEXT to preserve decimal precision.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			final_value TEXT NOT NULL,
			cagr        TEXT NOT NULL,
			allocation  TEXT NOT NULL,
			timestamp   TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListEntries(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, final_value, cagr, allocation, timestamp
		 FROM leaderboard_entries
		 ORDER BY CAST(final_value AS REAL) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		var finalS, cagrS, allocS, tsS string
		if err := rows.Scan(&e.ID, &e.Name, &finalS, &cagrS, &allocS, &tsS); err != nil {
			return nil, err
		}
		e.FinalValue, _ = decimal.NewFromString(finalS)
		e.CAGR, _ = decimal.NewFromString(cagrS)
		if err := json.Unmarshal([]byte(allocS), &e.Allocation); err != nil {
			return nil, fmt.Errorf("decode allocation for entry %s: %w", e.ID, err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, tsS)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) ReplaceEntries(ctx context.Context, entries []model.LeaderboardEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return err
	}
	for _, e := range entries {
		alloc, err := json.Marshal(e.Allocation)
		if err != nil {
			return fmt.Errorf("encode allocation for entry %s: %w", e.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO leaderboard_entries (id, name, final_value, cagr, allocation, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.FinalValue.String(), e.CAGR.String(),
			string(alloc), e.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
