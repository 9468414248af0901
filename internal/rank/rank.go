// Package rank computes the comparison metrics around a simulation run:
// CAGR, the fixed benchmark allocations, and the peer percentile against
// the leaderboard.
//
// CAGR needs a fractional power, which decimal cannot express; the
// exponentiation runs in float64 and the result is immediately converted
// back to decimal.
package rank

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
	"github.com/xeniatay/venture-adventure/internal/simulate"
)

// Display colors for the fixed benchmark series.
const (
	ColorEqualWeight = "#243b53"
	ColorPublicOnly  = "#ef8354"
	ColorVentureTop  = "#8d6cab"
)

// CAGRScale is the number of decimal places CAGR values are rounded to.
const CAGRScale int32 = 10

// CAGR computes the compound annual growth rate
//
//	(final / initial)^(1/periods) - 1
//
// when final, initial, and periods are all positive. Zero or negative
// inputs are degenerate but valid results, not errors: they yield 0.
func CAGR(final, initial decimal.Decimal, periods int) decimal.Decimal {
	if final.LessThanOrEqual(decimal.Zero) || initial.LessThanOrEqual(decimal.Zero) || periods <= 0 {
		return decimal.Zero
	}
	ratio := final.Div(initial).InexactFloat64()
	growth := math.Pow(ratio, 1/float64(periods)) - 1
	return decimal.NewFromFloat(growth).Round(CAGRScale)
}

// Percentile ranks candidate against the leaderboard: the fraction of
// entries with finalValue <= candidate. An empty board yields 1 (top
// position by convention).
func Percentile(candidate decimal.Decimal, entries []model.LeaderboardEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.NewFromInt(1)
	}
	betterOrEqual := 0
	for _, e := range entries {
		if e.FinalValue.LessThanOrEqual(candidate) {
			betterOrEqual++
		}
	}
	return decimal.NewFromInt(int64(betterOrEqual)).Div(decimal.NewFromInt(int64(len(entries))))
}

// ProjectedPercentile ranks candidate with itself counted as a synthetic
// member of the board, so a first-ever run lands at 100%.
func ProjectedPercentile(candidate decimal.Decimal, entries []model.LeaderboardEntry) decimal.Decimal {
	projected := make([]model.LeaderboardEntry, 0, len(entries)+1)
	projected = append(projected, entries...)
	projected = append(projected, model.LeaderboardEntry{FinalValue: candidate})
	return Percentile(candidate, projected)
}

// Benchmarks runs the three fixed comparison allocations through the
// simulator: equal weight across all assets, 100% public markets, and
// 100% top-decile venture.
func Benchmarks(capital decimal.Decimal, assets []model.AssetClass) []model.Benchmark {
	equalWeight := make(map[string]decimal.Decimal, len(assets))
	if len(assets) > 0 {
		w := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(assets))))
		for _, a := range assets {
			equalWeight[a.ID] = w
		}
	}

	full := decimal.NewFromInt(1)
	specs := []struct {
		id, label, color string
		weights          map[string]decimal.Decimal
	}{
		{"equalWeight", "Equal weight", ColorEqualWeight, equalWeight},
		{"publicOnly", "100% Public Markets", ColorPublicOnly, map[string]decimal.Decimal{"publicMarkets": full}},
		{"ventureTop", "100% VC Top-Decile", ColorVentureTop, map[string]decimal.Decimal{"vcTopDecile": full}},
	}

	benchmarks := make([]model.Benchmark, 0, len(specs))
	for _, spec := range specs {
		res := simulate.Run(capital, spec.weights, assets)
		res.CAGR = CAGR(res.FinalValue, capital, model.YearCount)
		benchmarks = append(benchmarks, model.Benchmark{
			ID:               spec.id,
			Label:            spec.label,
			Color:            spec.color,
			SimulationResult: res,
		})
	}
	return benchmarks
}
