package asset

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// Table owns the working return-series table: the catalog's asset classes
// with their current series, plus the immutable default series used to
// fill ingestion gaps and to reset. All accessors return copies so
// callers can never mutate the table behind its lock.
type Table struct {
	mu       sync.RWMutex
	assets   []model.AssetClass
	defaults map[string][]decimal.Decimal
}

// NewTable creates a table seeded from the default catalog.
func NewTable() *Table {
	assets := DefaultCatalog()
	defaults := make(map[string][]decimal.Decimal, len(assets))
	for _, a := range assets {
		defaults[a.ID] = copySeries(a.Returns)
	}
	return &Table{assets: assets, defaults: defaults}
}

// Assets returns a deep copy of all asset classes in catalog order.
func (t *Table) Assets() []model.AssetClass {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.AssetClass, len(t.assets))
	for i, a := range t.assets {
		out[i] = a
		out[i].Returns = copySeries(a.Returns)
	}
	return out
}

// IDs returns all asset ids in catalog order.
func (t *Table) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, len(t.assets))
	for i, a := range t.assets {
		ids[i] = a.ID
	}
	return ids
}

// Contains reports whether id is a known asset class.
func (t *Table) Contains(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, a := range t.assets {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Returns returns a copy of the current return series for id.
func (t *Table) Returns(id string) ([]decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, a := range t.assets {
		if a.ID == id {
			return copySeries(a.Returns), true
		}
	}
	return nil, false
}

// DefaultReturns returns a copy of the original default series for id.
func (t *Table) DefaultReturns(id string) ([]decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.defaults[id]
	if !ok {
		return nil, false
	}
	return copySeries(s), true
}

// ApplySeries replaces the return series of every asset named in repl,
// wholesale, in one operation. Every series must be complete (YearCount
// values) and every id known; the table is untouched on error.
func (t *Table) ApplySeries(repl map[string][]decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, s := range repl {
		if len(s) != model.YearCount {
			return fmt.Errorf("asset %s: series has %d values, want %d", id, len(s), model.YearCount)
		}
		if t.indexOf(id) < 0 {
			return fmt.Errorf("asset %s: unknown id", id)
		}
	}
	for id, s := range repl {
		t.assets[t.indexOf(id)].Returns = copySeries(s)
	}
	return nil
}

// Reset restores every asset's series to its original defaults.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.assets {
		t.assets[i].Returns = copySeries(t.defaults[t.assets[i].ID])
	}
}

// indexOf must be called with the lock held.
func (t *Table) indexOf(id string) int {
	for i, a := range t.assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func copySeries(s []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(s))
	copy(out, s)
	return out
}
