// Package model defines the core domain types shared across the simulator.
// All monetary values and returns use shopspring/decimal, never float64.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// The simulator replays a fixed historical window of annual returns.
const (
	BaseYear  = 2015
	YearCount = 11
)

// Years returns the fixed year range [BaseYear, BaseYear+YearCount).
func Years() []int {
	years := make([]int, YearCount)
	for i := range years {
		years[i] = BaseYear + i
	}
	return years
}

// Education holds static descriptive text for an asset class. It is shown
// to the user and has no effect on computation.
type Education struct {
	Range  string `json:"range"`
	Risk   string `json:"risk"`
	Access string `json:"access"`
}

// AssetClass is one allocatable asset with its annual return series.
// Returns always holds exactly YearCount signed fractional returns
// (0.109 = +10.9%), one per year of the fixed range. The series may be
// replaced wholesale by dataset ingestion.
type AssetClass struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	RetailRestricted bool              `json:"retail_restricted"`
	Returns          []decimal.Decimal `json:"returns"`
	Education        Education         `json:"education"`
}

// YearPoint is one point of a value timeline.
type YearPoint struct {
	Year  int             `json:"year"`
	Value decimal.Decimal `json:"value"`
}

// Timeline is an ordered sequence of YearPoints, strictly increasing by
// year, starting at BaseYear.
type Timeline []YearPoint

// FinalValue returns the last point's value, or fallback for an empty
// (degenerate) timeline.
func (t Timeline) FinalValue(fallback decimal.Decimal) decimal.Decimal {
	if len(t) == 0 {
		return fallback
	}
	return t[len(t)-1].Value
}

// AssetContribution is one contributing asset's share of a simulation:
// its fixed weight, its own compounded sub-timeline, and its final value.
type AssetContribution struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	FinalValue decimal.Decimal `json:"final_value"`
	Weight     decimal.Decimal `json:"weight"`
	Timeline   Timeline        `json:"timeline"`
}

// SimulationResult is the full output of one simulation run. The portfolio
// timeline is the pointwise sum of the per-asset timelines in Breakdown.
type SimulationResult struct {
	Timeline   Timeline            `json:"timeline"`
	Breakdown  []AssetContribution `json:"breakdown"`
	FinalValue decimal.Decimal     `json:"final_value"`
	CAGR       decimal.Decimal     `json:"cagr"`
}

// Benchmark is a fixed comparison allocation run through the same
// simulator, labelled and colored for display.
type Benchmark struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	SimulationResult
}

// LeaderboardEntry is one persisted simulation outcome. Entries are
// written whole and never mutated in place; the board is kept sorted
// descending by final value and truncated to a fixed cap.
type LeaderboardEntry struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	FinalValue decimal.Decimal            `json:"final_value"`
	CAGR       decimal.Decimal            `json:"cagr"`
	Allocation map[string]decimal.Decimal `json:"allocation"` // percentage points per asset id
	Timestamp  time.Time                  `json:"timestamp"`
}

// DatasetRecord is one validated (asset, year, return) triple produced by
// dataset validation and consumed by the merger. Transient; not retained
// after a merge.
type DatasetRecord struct {
	AssetID string          `json:"asset_id"`
	Year    int             `json:"year"`
	Value   decimal.Decimal `json:"value"`
}
