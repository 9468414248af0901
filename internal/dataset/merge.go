package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/asset"
	"github.com/xeniatay/venture-adventure/internal/model"
)

// ErrNoApplicableData is returned when a valid file matches no known
// asset. Fatal for the upload; the table is left untouched.
var ErrNoApplicableData = errors.New("dataset: no matching asset ids found")

// WarningKind tags a non-fatal merge warning so callers can filter by
// kind instead of string-matching.
type WarningKind string

const (
	// WarnDuplicateOverwrite: the same (asset, year) pair appeared more
	// than once; the last-seen value won.
	WarnDuplicateOverwrite WarningKind = "duplicate_overwrite"

	// WarnMissingFullRange: a matched asset covered none of the fixed
	// years; its series was left untouched.
	WarnMissingFullRange WarningKind = "missing_full_range"

	// WarnPartialCoverage: a matched asset covered only some of the fixed
	// years; the gaps were filled from its default series.
	WarnPartialCoverage WarningKind = "partial_coverage"

	// WarnUnknownAssetsSkipped: the file named asset ids that are not in
	// the catalog; their records were ignored.
	WarnUnknownAssetsSkipped WarningKind = "unknown_assets_skipped"

	// WarnYearRangeMismatch: the years observed in the file do not match
	// the fixed range; only the fixed range is simulated.
	WarnYearRangeMismatch WarningKind = "year_range_mismatch"
)

// Warning is one typed, non-fatal merge warning with enough context to
// render without parsing Message.
type Warning struct {
	Kind         WarningKind `json:"kind"`
	AssetID      string      `json:"asset_id,omitempty"`
	MissingYears int         `json:"missing_years,omitempty"`
	Pairs        []string    `json:"pairs,omitempty"`     // "assetId year" duplicates
	AssetIDs     []string    `json:"asset_ids,omitempty"` // unknown ids
	ObservedFrom int         `json:"observed_from,omitempty"`
	ObservedTo   int         `json:"observed_to,omitempty"`
	Message      string      `json:"message"`
}

// MergeResult reports which assets were actually touched and every
// warning raised while merging.
type MergeResult struct {
	AppliedAssets []string  `json:"applied_assets"`
	Warnings      []Warning `json:"warnings"`
}

// Merge applies validated records to the table. Per known asset with at
// least one matching record: full coverage of the fixed years replaces
// the series wholesale; partial coverage fills gaps from the asset's
// default series; zero coverage leaves it untouched. Unknown ids never
// fail the merge. All replacement series are computed before any table
// mutation, so a failed merge leaves the table bit-identical.
func Merge(records []model.DatasetRecord, tbl *asset.Table) (MergeResult, error) {
	byAsset := make(map[string]map[int]decimal.Decimal)
	var duplicates []string
	yearSeen := make(map[int]bool)

	for _, rec := range records {
		yearSeen[rec.Year] = true
		years, ok := byAsset[rec.AssetID]
		if !ok {
			years = make(map[int]decimal.Decimal)
			byAsset[rec.AssetID] = years
		}
		if _, dup := years[rec.Year]; dup {
			duplicates = append(duplicates, fmt.Sprintf("%s %d", rec.AssetID, rec.Year))
		}
		years[rec.Year] = rec.Value
	}

	var res MergeResult
	if len(duplicates) > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnDuplicateOverwrite,
			Pairs:   duplicates,
			Message: fmt.Sprintf("duplicates overwritten for: %s", strings.Join(duplicates, ", ")),
		})
	}

	fixedYears := model.Years()
	replacements := make(map[string][]decimal.Decimal)

	for _, a := range tbl.Assets() {
		assetRecords, ok := byAsset[a.ID]
		if !ok {
			continue
		}

		missing := 0
		for _, year := range fixedYears {
			if _, ok := assetRecords[year]; !ok {
				missing++
			}
		}

		if missing == len(fixedYears) {
			res.Warnings = append(res.Warnings, Warning{
				Kind:    WarnMissingFullRange,
				AssetID: a.ID,
				Message: fmt.Sprintf("%s has no data in %d–%d", a.Name, fixedYears[0], fixedYears[len(fixedYears)-1]),
			})
			continue
		}
		if missing > 0 {
			res.Warnings = append(res.Warnings, Warning{
				Kind:         WarnPartialCoverage,
				AssetID:      a.ID,
				MissingYears: missing,
				Message:      fmt.Sprintf("%s missing %d %s; defaults used for gaps", a.Name, missing, plural(missing, "year")),
			})
		}

		defaults, _ := tbl.DefaultReturns(a.ID)
		next := make([]decimal.Decimal, len(fixedYears))
		for i, year := range fixedYears {
			if v, ok := assetRecords[year]; ok {
				next[i] = v
			} else {
				next[i] = defaults[i]
			}
		}
		replacements[a.ID] = next
		res.AppliedAssets = append(res.AppliedAssets, a.ID)
	}

	var unknown []string
	for id := range byAsset {
		if !tbl.Contains(id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		res.Warnings = append(res.Warnings, Warning{
			Kind:     WarnUnknownAssetsSkipped,
			AssetIDs: unknown,
			Message:  fmt.Sprintf("unknown asset ids skipped: %s", strings.Join(unknown, ", ")),
		})
	}

	if len(yearSeen) > 0 {
		minYear, maxYear := 0, 0
		for y := range yearSeen {
			if minYear == 0 || y < minYear {
				minYear = y
			}
			if y > maxYear {
				maxYear = y
			}
		}
		if minYear != fixedYears[0] || maxYear != fixedYears[len(fixedYears)-1] {
			res.Warnings = append(res.Warnings, Warning{
				Kind:         WarnYearRangeMismatch,
				ObservedFrom: minYear,
				ObservedTo:   maxYear,
				Message: fmt.Sprintf("dataset years span %d–%d; simulator uses %d–%d",
					minYear, maxYear, fixedYears[0], fixedYears[len(fixedYears)-1]),
			})
		}
	}

	if len(res.AppliedAssets) == 0 {
		return res, ErrNoApplicableData
	}

	if err := tbl.ApplySeries(replacements); err != nil {
		return MergeResult{}, err
	}
	return res, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
