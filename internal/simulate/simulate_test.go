package simulate

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

var capital = decimal.NewFromInt(100000)

func TestRun_SingleAssetFullWeight(t *testing.T) {
	assets := asset.DefaultCatalog()
	res := Run(capital, map[string]decimal.Decimal{"publicMarkets": d(1)}, assets)

	if len(res.Timeline) != model.YearCount {
		t.Fatalf("expected %d timeline points, got %d", model.YearCount, len(res.Timeline))
	}
	if res.Timeline[0].Year != model.BaseYear {
		t.Errorf("expected timeline to start at %d, got %d", model.BaseYear, res.Timeline[0].Year)
	}

	// 100000 compounded through the public markets series.
	want := d(301058.7496500125)
	tolerance := d(0.0001)
	if res.FinalValue.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("expected final value %s, got %s", want, res.FinalValue)
	}
}

func TestRun_TimelineIsPointwiseSum(t *testing.T) {
	assets := asset.DefaultCatalog()
	weights := map[string]decimal.Decimal{
		"publicMarkets": d(0.5),
		"cash":          d(0.3),
		"realEstate":    d(0.2),
	}
	res := Run(capital, weights, assets)

	if len(res.Breakdown) != 3 {
		t.Fatalf("expected 3 contributing assets, got %d", len(res.Breakdown))
	}
	for i, pt := range res.Timeline {
		sum := decimal.Zero
		for _, c := range res.Breakdown {
			sum = sum.Add(c.Timeline[i].Value)
		}
		if !pt.Value.Equal(sum) {
			t.Errorf("year %d: timeline %s != breakdown sum %s", pt.Year, pt.Value, sum)
		}
	}
}

func TestRun_ZeroAndNegativeWeightsExcluded(t *testing.T) {
	assets := asset.DefaultCatalog()
	weights := map[string]decimal.Decimal{
		"publicMarkets": d(1),
		"cash":          decimal.Zero,
		"realEstate":    d(-0.5),
	}
	res := Run(capital, weights, assets)

	if len(res.Breakdown) != 1 {
		t.Fatalf("expected 1 contributing asset, got %d", len(res.Breakdown))
	}
	if res.Breakdown[0].ID != "publicMarkets" {
		t.Errorf("expected publicMarkets, got %s", res.Breakdown[0].ID)
	}
}

func TestRun_NoContributingAssets(t *testing.T) {
	assets := asset.DefaultCatalog()
	res := Run(capital, map[string]decimal.Decimal{}, assets)

	if len(res.Timeline) != 0 {
		t.Errorf("expected empty timeline, got %d points", len(res.Timeline))
	}
	if len(res.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d", len(res.Breakdown))
	}
	if !res.FinalValue.Equal(capital) {
		t.Errorf("expected final value to fall back to capital, got %s", res.FinalValue)
	}
}

func TestRun_NoRenormalization(t *testing.T) {
	assets := asset.DefaultCatalog()
	// Weights sum to 0.5; the other half of capital is simply not invested.
	res := Run(capital, map[string]decimal.Decimal{"cash": d(0.5)}, assets)

	seed := capital.Mul(d(0.5))
	returns, _ := asset.NewTable().Returns("cash")
	want := seed
	for _, r := range returns {
		want = want.Mul(decimal.NewFromInt(1).Add(r))
	}
	if !res.FinalValue.Equal(want) {
		t.Errorf("expected %s, got %s", want, res.FinalValue)
	}
}

func TestRun_Deterministic(t *testing.T) {
	assets := asset.DefaultCatalog()
	weights := map[string]decimal.Decimal{
		"vcTopDecile":   d(0.4),
		"privateCredit": d(0.6),
	}
	a := Run(capital, weights, assets)
	b := Run(capital, weights, assets)

	if !a.FinalValue.Equal(b.FinalValue) {
		t.Errorf("runs differ: %s vs %s", a.FinalValue, b.FinalValue)
	}
	for i := range a.Timeline {
		if !a.Timeline[i].Value.Equal(b.Timeline[i].Value) {
			t.Errorf("year %d differs: %s vs %s", a.Timeline[i].Year,
				a.Timeline[i].Value, b.Timeline[i].Value)
		}
	}
}
