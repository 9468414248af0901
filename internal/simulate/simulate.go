// Package simulate implements the deterministic return-compounding
// simulator: a fractional weight vector and the asset table in, a value
// timeline and per-asset breakdown out.
//
// All monetary values use shopspring/decimal, never float64.
package simulate

import (
	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
)

var one = decimal.NewFromInt(1)

// Run compounds capital across assets. Weights are fractional and used
// as-is with no renormalization. Each asset with weight > 0 is seeded at
// capital * weight and multiplied by (1 + r) per year in order; weights
// stay fixed at the outset (no rebalancing, no intra-year compounding).
// The portfolio timeline is the pointwise sum of the asset timelines.
//
// Assets with weight <= 0 contribute nothing and are excluded from the
// breakdown. If no asset contributes, the timeline is empty and the
// final value is the untouched capital. CAGR is left zero; callers fill
// it via rank.CAGR.
//
// Run is pure: identical inputs yield bit-identical output.
func Run(capital decimal.Decimal, weights map[string]decimal.Decimal, assets []model.AssetClass) model.SimulationResult {
	years := model.Years()

	var timeline model.Timeline
	var breakdown []model.AssetContribution

	for _, a := range assets {
		weight := weights[a.ID]
		if weight.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if timeline == nil {
			timeline = make(model.Timeline, len(years))
			for i, year := range years {
				timeline[i] = model.YearPoint{Year: year}
			}
		}

		value := capital.Mul(weight)
		assetTimeline := make(model.Timeline, 0, len(years))
		for i, r := range a.Returns {
			value = value.Mul(one.Add(r))
			assetTimeline = append(assetTimeline, model.YearPoint{Year: years[i], Value: value})
			timeline[i].Value = timeline[i].Value.Add(value)
		}

		breakdown = append(breakdown, model.AssetContribution{
			ID:         a.ID,
			Name:       a.Name,
			FinalValue: value,
			Weight:     weight,
			Timeline:   assetTimeline,
		})
	}

	return model.SimulationResult{
		Timeline:   timeline,
		Breakdown:  breakdown,
		FinalValue: timeline.FinalValue(capital),
	}
}
