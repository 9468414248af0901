package dataset

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCSV_Simple(t *testing.T) {
	rows, err := ParseCSV("a,b,c\n1,2,3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

func TestParseCSV_QuotedCommaAndNewline(t *testing.T) {
	rows, err := ParseCSV("a,\"b,c\"\n\"line1\nline2\",d\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b,c"}, {"line1\nline2", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

func TestParseCSV_EscapedQuote(t *testing.T) {
	rows, err := ParseCSV("\"say \"\"hi\"\"\",x\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0][0] != `say "hi"` {
		t.Errorf("expected escaped quote, got %q", rows[0][0])
	}
}

func TestParseCSV_CRLF(t *testing.T) {
	rows, err := ParseCSV("a,b\r\nc,d\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

func TestParseCSV_NoTrailingNewline(t *testing.T) {
	rows, err := ParseCSV("a,b\nc,d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "d" {
		t.Errorf("expected final field d, got %q", rows[1][1])
	}
}

func TestParseCSV_BlankRowsDropped(t *testing.T) {
	rows, err := ParseCSV("a,b\n\n  , \nc,d\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected blank rows dropped, got %d rows: %v", len(rows), rows)
	}
}

func TestParseCSV_UnterminatedQuote(t *testing.T) {
	_, err := ParseCSV("a,\"unclosed\nb,c\n")
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	rows, err := ParseCSV("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}
