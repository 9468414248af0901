package rank

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/asset"
	"github.com/xeniatay/venture-adventure/internal/model"
)

// d is a test helper for creating decimals from float64.
func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func entries(values ...float64) []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, len(values))
	for i, v := range values {
		out[i] = model.LeaderboardEntry{FinalValue: d(v)}
	}
	return out
}

// --- CAGR tests ---

func TestCAGR_Doubling(t *testing.T) {
	// 100000 -> 200000 over 10 years: (2)^(1/10) - 1 ~= 7.18%
	got := CAGR(d(200000), d(100000), 10)
	want := d(0.0717734625)
	tolerance := d(0.0000001)
	if got.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("expected ~%s, got %s", want, got)
	}
}

func TestCAGR_FlatValue(t *testing.T) {
	got := CAGR(d(100000), d(100000), 10)
	if !got.Equal(decimal.Zero) {
		t.Errorf("expected 0 for flat value, got %s", got)
	}
}

func TestCAGR_Degenerate(t *testing.T) {
	tests := []struct {
		name           string
		final, initial decimal.Decimal
		periods        int
	}{
		{"zero final", decimal.Zero, d(100000), 10},
		{"negative final", d(-5), d(100000), 10},
		{"zero initial", d(100000), decimal.Zero, 10},
		{"zero periods", d(200000), d(100000), 0},
		{"negative periods", d(200000), d(100000), -1},
	}
	for _, tt := range tests {
		if got := CAGR(tt.final, tt.initial, tt.periods); !got.Equal(decimal.Zero) {
			t.Errorf("%s: expected 0, got %s", tt.name, got)
		}
	}
}

func TestCAGR_Negative(t *testing.T) {
	// Losing half over 10 years yields a negative rate.
	got := CAGR(d(50000), d(100000), 10)
	if !got.IsNegative() {
		t.Errorf("expected negative CAGR, got %s", got)
	}
}

// --- Percentile tests ---

func TestPercentile_EmptyBoard(t *testing.T) {
	got := Percentile(d(100), nil)
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1 for empty board, got %s", got)
	}
}

func TestPercentile_Middle(t *testing.T) {
	board := entries(100, 200, 300)
	got := Percentile(d(250), board)
	want := decimal.NewFromInt(2).Div(decimal.NewFromInt(3))
	if !got.Equal(want) {
		t.Errorf("expected 2/3, got %s", got)
	}
}

func TestPercentile_TiesCountAsBeaten(t *testing.T) {
	board := entries(100, 200, 300)
	got := Percentile(d(200), board)
	want := decimal.NewFromInt(2).Div(decimal.NewFromInt(3))
	if !got.Equal(want) {
		t.Errorf("expected ties to count, got %s", got)
	}
}

func TestPercentile_Bottom(t *testing.T) {
	board := entries(100, 200, 300)
	got := Percentile(d(50), board)
	if !got.Equal(decimal.Zero) {
		t.Errorf("expected 0, got %s", got)
	}
}

func TestProjectedPercentile_FirstRunIsTop(t *testing.T) {
	got := ProjectedPercentile(d(12345), nil)
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1 for first-ever run, got %s", got)
	}
}

func TestProjectedPercentile_CountsSelf(t *testing.T) {
	board := entries(100, 200, 300)
	// Candidate 250 beats 2 of 3 plus itself: 3/4.
	got := ProjectedPercentile(d(250), board)
	want := decimal.NewFromInt(3).Div(decimal.NewFromInt(4))
	if !got.Equal(want) {
		t.Errorf("expected 3/4, got %s", got)
	}
}

// --- Benchmark tests ---

func TestBenchmarks_ThreeFixedSpecs(t *testing.T) {
	capital := decimal.NewFromInt(100000)
	benchmarks := Benchmarks(capital, asset.DefaultCatalog())

	if len(benchmarks) != 3 {
		t.Fatalf("expected 3 benchmarks, got %d", len(benchmarks))
	}

	wantIDs := []string{"equalWeight", "publicOnly", "ventureTop"}
	wantColors := []string{ColorEqualWeight, ColorPublicOnly, ColorVentureTop}
	for i, b := range benchmarks {
		if b.ID != wantIDs[i] {
			t.Errorf("benchmark %d: expected id %s, got %s", i, wantIDs[i], b.ID)
		}
		if b.Color != wantColors[i] {
			t.Errorf("benchmark %d: expected color %s, got %s", i, wantColors[i], b.Color)
		}
		if len(b.Timeline) != model.YearCount {
			t.Errorf("benchmark %s: expected %d timeline points, got %d",
				b.ID, model.YearCount, len(b.Timeline))
		}
		if b.FinalValue.LessThanOrEqual(decimal.Zero) {
			t.Errorf("benchmark %s: expected positive final value, got %s", b.ID, b.FinalValue)
		}
	}
}

func TestBenchmarks_PublicOnlyMatchesDirectRun(t *testing.T) {
	capital := decimal.NewFromInt(100000)
	assets := asset.DefaultCatalog()
	benchmarks := Benchmarks(capital, assets)

	want := d(301058.7496500125)
	tolerance := d(0.0001)
	if benchmarks[1].FinalValue.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("publicOnly: expected final value ~%s, got %s", want, benchmarks[1].FinalValue)
	}
	if benchmarks[1].CAGR.LessThanOrEqual(decimal.Zero) {
		t.Errorf("publicOnly: expected positive CAGR, got %s", benchmarks[1].CAGR)
	}
}
