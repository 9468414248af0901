// Package asset holds the default asset-class catalog and the working
// return-series table the simulator reads from.
package asset

import (
	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
)

// d is a shorthand for building the catalog's return series.
func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func series(fs ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(fs))
	for i, f := range fs {
		out[i] = d(f)
	}
	return out
}

// DefaultCatalog returns a fresh copy of the built-in asset classes with
// their illustrative historical return series for the fixed year range.
// Callers own the returned slices.
func DefaultCatalog() []model.AssetClass {
	return []model.AssetClass{
		{
			ID:               "publicMarkets",
			Name:             "Public Markets (S&P 500)",
			Category:         "Public Markets",
			RetailRestricted: false,
			Returns:          series(0.012, 0.109, 0.195, -0.062, 0.288, 0.166, 0.268, -0.186, 0.158, 0.246, 0.07),
			Education: model.Education{
				Range:  "Annualized 6%–12% over the decade",
				Risk:   "High liquidity, moderate drawdowns",
				Access: "ETFs, index funds, and brokerage accounts",
			},
		},
		{
			ID:               "privateEquity",
			Name:             "Private Equity",
			Category:         "Private Markets",
			RetailRestricted: true,
			Returns:          series(0.09, 0.12, 0.17, 0.08, 0.21, 0.18, 0.19, 0.05, 0.13, 0.16, 0.12),
			Education: model.Education{
				Range:  "8%–18% net of fees across vintages",
				Risk:   "Illiquid for 7–10 years, cash flow timing risk",
				Access: "Typically institutional or accredited investors",
			},
		},
		{
			ID:               "realEstate",
			Name:             "Real Estate (NCREIF ODCE)",
			Category:         "Real Assets",
			RetailRestricted: false,
			Returns:          series(0.128, 0.086, 0.071, 0.069, 0.062, 0.01, 0.024, 0.112, 0.083, 0.058, 0.05),
			Education: model.Education{
				Range:  "6%–10% yield + appreciation",
				Risk:   "Cyclical, sensitive to rates, moderate liquidity",
				Access: "REITs for retail; private funds for institutions",
			},
		},
		{
			ID:               "privateCredit",
			Name:             "Private Credit",
			Category:         "Private Markets",
			RetailRestricted: false,
			Returns:          series(0.08, 0.085, 0.088, 0.082, 0.079, 0.075, 0.082, 0.091, 0.094, 0.098, 0.09),
			Education: model.Education{
				Range:  "7%–10% floating yield",
				Risk:   "Credit defaults, limited liquidity, rate sensitivity",
				Access: "Interval funds and BDCs offer partial retail access",
			},
		},
		{
			ID:               "vcMedian",
			Name:             "Venture Capital (Median Fund)",
			Category:         "Venture Capital",
			RetailRestricted: true,
			Returns:          series(0.07, 0.09, 0.12, 0.02, 0.16, 0.11, 0.14, -0.02, 0.10, 0.13, 0.09),
			Education: model.Education{
				Range:  "Long-term 10%–15% with high dispersion",
				Risk:   "High failure rate, illiquidity, capital calls",
				Access: "Limited to accredited investors and fund-of-funds",
			},
		},
		{
			ID:               "vcTopDecile",
			Name:             "Venture Capital (Top-Decile)",
			Category:         "Venture Capital",
			RetailRestricted: true,
			Returns:          series(0.18, 0.22, 0.29, 0.08, 0.37, 0.31, 0.35, 0.12, 0.28, 0.32, 0.24),
			Education: model.Education{
				Range:  "Top funds can deliver 25%+ IRR",
				Risk:   "Power-law outcomes, long time-to-liquidity",
				Access: "Elite institutional LPs and top-tier fund managers",
			},
		},
		{
			ID:               "cash",
			Name:             "Cash / Risk-Free",
			Category:         "Cash Equivalent",
			RetailRestricted: false,
			Returns:          series(0.004, 0.006, 0.018, 0.021, 0.017, 0.009, 0.003, 0.008, 0.024, 0.035, 0.031),
			Education: model.Education{
				Range:  "0%–3% short-term yields",
				Risk:   "Minimal risk, inflation drag",
				Access: "Savings accounts, money market funds, T-bills",
			},
		},
	}
}
