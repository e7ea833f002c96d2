package quiz

import (
	"reflect"
	"testing"
)

func TestParseLineQuotedComma(t *testing.T) {
	got := ParseLine(`a,"b,c",d`)
	want := []string{"a", "b,c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseLineEscapedQuotes(t *testing.T) {
	got := ParseLine(`"He said ""hi"""`)
	want := []string{`He said "hi"`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseLineTrimsBeforeUnquoting(t *testing.T) {
	got := ParseLine(`  one ,  "two"  ,three  `)
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseLineUnterminatedQuote(t *testing.T) {
	// the open quote swallows the rest of the line, commas included
	got := ParseLine(`x,"y,z`)
	want := []string{"x", `"y,z`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseLineEmptyFields(t *testing.T) {
	got := ParseLine(`,,`)
	if len(got) != 3 {
		t.Fatalf("expected 3 empty fields, got %q", got)
	}
	for _, f := range got {
		if f != "" {
			t.Fatalf("expected empty field, got %q", f)
		}
	}

	if got := ParseLine(""); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected a single empty field for an empty line, got %q", got)
	}
	if got := ParseLine(`"`); len(got) != 1 || got[0] != `"` {
		t.Fatalf("a lone quote should be kept as is, got %q", got)
	}
}

func TestParseRowsKeepsLineIndexes(t *testing.T) {
	rows := ParseRows("h1,h2\r\n\nq,a\n")
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %q", len(rows), rows)
	}
	if rows[2][0] != "q" || rows[2][1] != "a" {
		t.Fatalf("unexpected row 2: %q", rows[2])
	}
	if len(rows[1]) != 1 || rows[1][0] != "" {
		t.Fatalf("blank line should parse as one empty field, got %q", rows[1])
	}
}
