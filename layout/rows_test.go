package layout

import (
	"reflect"
	"testing"

	"github.com/tsawler/databook/model"
)

func TestRowGrouper_GroupSpans(t *testing.T) {
	g := NewRowGrouper()

	spans := []model.Span{
		{Text: "Year", X: 0.1, Y: 0.10},
		{Text: "Mallard", X: 0.4, Y: 0.105},
		{Text: "1998", X: 0.1, Y: 0.15},
		{Text: "230", X: 0.4, Y: 0.152},
		{Text: "1999", X: 0.1, Y: 0.20},
	}

	rows := g.GroupSpans(spans)
	if len(rows) != 3 {
		t.Fatalf("GroupSpans() produced %d rows, want 3", len(rows))
	}

	wantTexts := []string{"Year Mallard", "1998 230", "1999"}
	for i, want := range wantTexts {
		if got := rows[i].Text(); got != want {
			t.Errorf("row %d text = %q, want %q", i, got, want)
		}
	}
}

func TestRowGrouper_GroupSpans_SortsUnsortedInput(t *testing.T) {
	g := NewRowGrouper()

	spans := []model.Span{
		{Text: "second", X: 0.1, Y: 0.5},
		{Text: "first", X: 0.1, Y: 0.1},
	}

	rows := g.GroupSpans(spans)
	if len(rows) != 2 {
		t.Fatalf("GroupSpans() produced %d rows, want 2", len(rows))
	}
	if rows[0].Text() != "first" || rows[1].Text() != "second" {
		t.Errorf("rows not ordered top to bottom: %q, %q", rows[0].Text(), rows[1].Text())
	}
}

func TestRowGrouper_GroupSpans_SkipsEmptySpans(t *testing.T) {
	g := NewRowGrouper()

	spans := []model.Span{
		{Text: "  ", X: 0.1, Y: 0.1},
		{Text: "", X: 0.2, Y: 0.5},
	}

	if rows := g.GroupSpans(spans); rows != nil {
		t.Errorf("GroupSpans() on blank spans = %v, want nil", rows)
	}
}

func TestRowGrouper_Idempotent(t *testing.T) {
	g := NewRowGrouper()

	// Already-grouped input: one line per row, well separated.
	spans := []model.Span{
		{Text: "a", X: 0.1, Y: 0.10},
		{Text: "b", X: 0.1, Y: 0.20},
		{Text: "c", X: 0.1, Y: 0.30},
	}

	first := g.GroupSpans(spans)

	// Regroup the grouped rows' lines.
	var lines []model.Line
	for _, r := range first {
		lines = append(lines, r.Lines...)
	}
	second := g.GroupLines(lines)

	if len(first) != len(second) {
		t.Fatalf("regrouping changed row count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text() != second[i].Text() {
			t.Errorf("row %d changed after regrouping: %q vs %q", i, first[i].Text(), second[i].Text())
		}
	}
}

func TestRowGrouper_GroupLines_ChainedTolerance(t *testing.T) {
	g := NewRowGrouper()

	// Each consecutive pair is within tolerance, so the chain stays one row
	// even though the ends are further apart than the tolerance.
	lines := []model.Line{
		{Y: 0.100, Spans: []model.Span{{Text: "a", X: 0.1, Y: 0.100}}},
		{Y: 0.112, Spans: []model.Span{{Text: "b", X: 0.2, Y: 0.112}}},
		{Y: 0.124, Spans: []model.Span{{Text: "c", X: 0.3, Y: 0.124}}},
	}

	rows := g.GroupLines(lines)
	if len(rows) != 1 {
		t.Fatalf("GroupLines() produced %d rows, want 1", len(rows))
	}
	if got := rows[0].Text(); got != "a b c" {
		t.Errorf("row text = %q, want %q", got, "a b c")
	}
}

func TestRowGrouper_LinesFromSpans(t *testing.T) {
	g := NewRowGrouper()

	spans := []model.Span{
		{Text: "top", X: 0.1, Y: 0.1},
		{Text: "bottom", X: 0.1, Y: 0.8},
	}

	lines := g.LinesFromSpans(spans)
	want := []float64{0.1, 0.8}
	got := []float64{lines[0].Y, lines[1].Y}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("line y positions = %v, want %v", got, want)
	}
}
