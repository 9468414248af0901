// Package dataset implements CSV ingestion for custom return series:
// a pure tokenizer, a schema/row validator, and a merger that applies
// validated records to the working asset table.
package dataset

import (
	"errors"
	"strings"
)

// ErrMalformedInput is returned when a quoted field is never closed.
// Fatal to the whole upload; nothing downstream runs.
var ErrMalformedInput = errors.New("dataset: unterminated quoted field")

// ParseCSV tokenizes raw text into rows of string fields. It understands
// comma separation, double-quote enclosure with quotes escaped by
// doubling, and \n or \r\n line terminators inside or outside quotes.
// Rows whose fields are all empty (after trimming) are dropped.
//
// This is a pure tokenizer: no header names, no types.
func ParseCSV(text string) ([][]string, error) {
	var rows [][]string
	var row []string
	var field []byte
	insideQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '"' && insideQuotes && i+1 < len(text) && text[i+1] == '"' {
			field = append(field, '"')
			i++
			continue
		}
		if c == '"' {
			insideQuotes = !insideQuotes
			continue
		}
		if c == ',' && !insideQuotes {
			row = append(row, string(field))
			field = field[:0]
			continue
		}
		if (c == '\n' || c == '\r') && !insideQuotes {
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			row = append(row, string(field))
			rows = append(rows, row)
			row = nil
			field = field[:0]
			continue
		}
		field = append(field, c)
	}

	if insideQuotes {
		return nil, ErrMalformedInput
	}
	if len(field) > 0 || len(row) > 0 {
		row = append(row, string(field))
		rows = append(rows, row)
	}

	return dropBlankRows(rows), nil
}

// dropBlankRows removes rows where every field is empty or whitespace.
func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, r := range rows {
		if !isBlankRow(r) {
			out = append(out, r)
		}
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
