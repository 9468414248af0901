package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/model"
)

var (
	// ErrEmptyFile is returned when the CSV contains no rows at all.
	ErrEmptyFile = errors.New("dataset: file is empty")

	// ErrMissingColumns is returned when the header row lacks one of the
	// required columns. Fatal; no partial parsing is attempted.
	ErrMissingColumns = errors.New("dataset: header must include assetId, year, return")
)

// percentThreshold: a parsed return whose absolute value exceeds this is
// assumed to be written in percent and divided by 100. The cutoff is
// strictly greater than 2, so a literal 2 still reads as +200%.
var percentThreshold = decimal.NewFromInt(2)

// RowError describes one rejected data row. Row indices are 1-based and
// count the header, so the first data row is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ValidateResult carries the validated records alongside the per-row
// errors for rows that were skipped.
type ValidateResult struct {
	Records   []model.DatasetRecord
	RowErrors []RowError
}

// Validate turns tokenized rows into dataset records. The first row must
// be a header naming assetId, year, and return (case-insensitive, any
// order, extra columns ignored). Bad data rows are recorded as RowErrors
// and skipped; processing continues with the remaining rows.
func Validate(rows [][]string) (ValidateResult, error) {
	if len(rows) == 0 {
		return ValidateResult{}, ErrEmptyFile
	}

	assetIdx, yearIdx, returnIdx := -1, -1, -1
	for i, cell := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "assetid":
			assetIdx = i
		case "year":
			yearIdx = i
		case "return":
			returnIdx = i
		}
	}
	if assetIdx == -1 || yearIdx == -1 || returnIdx == -1 {
		return ValidateResult{}, ErrMissingColumns
	}

	var res ValidateResult
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, counting the header

		assetID := strings.TrimSpace(cellAt(row, assetIdx))
		yearRaw := strings.TrimSpace(cellAt(row, yearIdx))
		returnRaw := strings.TrimSpace(cellAt(row, returnIdx))

		if assetID == "" {
			res.RowErrors = append(res.RowErrors, RowError{rowNum, "missing assetId"})
			continue
		}
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			res.RowErrors = append(res.RowErrors, RowError{rowNum, fmt.Sprintf("invalid year %q", yearRaw)})
			continue
		}
		value, err := NormalizeReturn(returnRaw)
		if err != nil {
			res.RowErrors = append(res.RowErrors, RowError{rowNum, fmt.Sprintf("invalid return %q", returnRaw)})
			continue
		}

		res.Records = append(res.Records, model.DatasetRecord{
			AssetID: assetID,
			Year:    year,
			Value:   value,
		})
	}

	return res, nil
}

// NormalizeReturn parses a raw return cell into a signed fraction. A
// trailing % is stripped; if the absolute parsed value exceeds 2 it is
// treated as a percentage and divided by 100, so "9.5" becomes 0.095
// while "0.095" stays 0.095.
func NormalizeReturn(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty return value")
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if v.Abs().GreaterThan(percentThreshold) {
		return v.Div(decimal.NewFromInt(100)), nil
	}
	return v, nil
}

// cellAt tolerates short rows: missing trailing cells read as empty.
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
