package model

import (
	"sort"
	"strings"
)

// Span is a fragment of text with a normalized page position, the atomic
// unit emitted by layout extraction. X and Y are fractions of page width
// and height in [0,1], with Y measured from the top of the page.
type Span struct {
	Text string
	X    float64
	Y    float64
	Font string
	Size float64
}

// Line is an ordered group of spans sharing a y-position.
type Line struct {
	Y     float64
	Spans []Span
}

// Text returns the line's spans joined left to right with single spaces.
func (l Line) Text() string {
	spans := make([]Span, len(l.Spans))
	copy(spans, l.Spans)
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].X < spans[j].X
	})

	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Row is an ordered list of lines whose y-positions fall within the row
// grouping tolerance. Rows are ordered top to bottom; the order is
// significant and never re-sorted after creation.
type Row struct {
	Lines []Line
}

// Spans returns all spans in the row across its lines.
func (r Row) Spans() []Span {
	var spans []Span
	for _, l := range r.Lines {
		spans = append(spans, l.Spans...)
	}
	return spans
}

// Y returns the y-position of the row's first line, or 0 for an empty row.
func (r Row) Y() float64 {
	if len(r.Lines) == 0 {
		return 0
	}
	return r.Lines[0].Y
}

// Text returns the row's text joined left to right with single spaces.
func (r Row) Text() string {
	spans := r.Spans()
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].X < spans[j].X
	})

	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Boundaries is a sorted, strictly increasing sequence of normalized x
// breakpoints bounded by the sentinels 0 and 1. A table with n columns has
// n+1 boundaries.
type Boundaries []float64

// ColumnCount returns the number of columns the boundaries describe.
func (b Boundaries) ColumnCount() int {
	if len(b) < 2 {
		return 0
	}
	return len(b) - 1
}

// ColumnFor returns the column index for a normalized x position, scanning
// boundaries in order so the first match wins. It returns -1 when x falls
// at or beyond the last boundary.
func (b Boundaries) ColumnFor(x float64) int {
	for i := 0; i < len(b)-1; i++ {
		if b[i] <= x && x < b[i+1] {
			return i
		}
	}
	return -1
}

// Region is a normalized vertical slice of a page believed to contain
// exactly one table.
type Region struct {
	Top    float64
	Bottom float64
}

// FullPage is the region covering an entire page.
var FullPage = Region{Top: 0.0, Bottom: 1.0}

// Contains reports whether a normalized y position falls inside the region.
func (r Region) Contains(y float64) bool {
	return y >= r.Top && y <= r.Bottom
}

// Height returns the vertical extent of the region.
func (r Region) Height() float64 {
	return r.Bottom - r.Top
}
