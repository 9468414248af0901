package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// d is a test helper for creating decimals from float64.
func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func entry(id string, finalValue float64) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		ID:         id,
		Name:       "Analyst",
		FinalValue: d(finalValue),
		Allocation: map[string]decimal.Decimal{"cash": d(100)},
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(got))
	}

	want := []model.LeaderboardEntry{entry("a", 200), entry("b", 100)}
	if err := s.ReplaceEntries(ctx, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err = s.ListEntries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("unexpected entries: %v", got)
	}
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.ReplaceEntries(ctx, []model.LeaderboardEntry{entry("a", 200)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := s.ListEntries(ctx)
	got[0].ID = "mutated"

	again, _ := s.ListEntries(ctx)
	if again[0].ID != "a" {
		t.Error("mutating a listed entry should not affect the store")
	}
}

// --- Append tests ---

func TestAppend_SortsDescending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, v := range []float64{150, 300, 100} {
		if _, err := Append(ctx, s, entry(fmt.Sprintf("e%v", v), v)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	board, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board))
	}
	for i := 1; i < len(board); i++ {
		if board[i].FinalValue.GreaterThan(board[i-1].FinalValue) {
			t.Errorf("board not sorted descending at %d: %s > %s",
				i, board[i].FinalValue, board[i-1].FinalValue)
		}
	}
}

func TestAppend_TruncatesToCap(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < MaxEntries+5; i++ {
		if _, err := Append(ctx, s, entry(fmt.Sprintf("e%d", i), float64(100+i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	board, _ := s.ListEntries(ctx)
	if len(board) != MaxEntries {
		t.Fatalf("expected board capped at %d, got %d", MaxEntries, len(board))
	}
	// Highest values survive: 100..119 inserted, top 15 start at 119.
	if !board[0].FinalValue.Equal(d(119)) {
		t.Errorf("expected top entry 119, got %s", board[0].FinalValue)
	}
	if !board[MaxEntries-1].FinalValue.Equal(d(105)) {
		t.Errorf("expected bottom entry 105, got %s", board[MaxEntries-1].FinalValue)
	}
}

func TestAppend_ReturnsUpdatedBoard(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	board, err := Append(ctx, s, entry("first", 500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board) != 1 || board[0].ID != "first" {
		t.Errorf("unexpected board: %v", board)
	}
}

func TestAppend_StableOrderForTies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := Append(ctx, s, entry("older", 200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	board, err := Append(ctx, s, entry("newer", 200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board[0].ID != "older" || board[1].ID != "newer" {
		t.Errorf("expected stable order for ties, got %v", []string{board[0].ID, board[1].ID})
	}
}
