package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/databook/model"
)

// RowGrouper clusters positioned spans into rows by vertical proximity.
type RowGrouper struct {
	// Tolerance is the maximum y-distance between consecutive spans in
	// the same row.
	Tolerance float64
}

// NewRowGrouper creates a row grouper with the default tolerance.
func NewRowGrouper() *RowGrouper {
	return &RowGrouper{Tolerance: DefaultConfig().RowTolerance}
}

// GroupSpans clusters spans into rows. Spans are sorted by y-position
// first, then grouped greedily: a span whose y-gap from the previous span
// exceeds the tolerance starts a new row. Empty spans are skipped. The
// returned rows are ordered top to bottom.
func (g *RowGrouper) GroupSpans(spans []model.Span) []model.Row {
	filtered := make([]model.Span, 0, len(spans))
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Y < filtered[j].Y
	})

	var rows []model.Row
	current := []model.Span{filtered[0]}
	lastY := filtered[0].Y

	for _, s := range filtered[1:] {
		if s.Y-lastY > g.Tolerance {
			rows = append(rows, rowFromSpans(current))
			current = []model.Span{s}
		} else {
			current = append(current, s)
		}
		lastY = s.Y
	}
	rows = append(rows, rowFromSpans(current))

	return rows
}

// GroupLines clusters pre-grouped lines into rows with the same greedy
// y-gap rule. Lines with no text are skipped.
func (g *RowGrouper) GroupLines(lines []model.Line) []model.Row {
	filtered := make([]model.Line, 0, len(lines))
	for _, l := range lines {
		if l.Text() != "" {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Y < filtered[j].Y
	})

	var rows []model.Row
	current := []model.Line{filtered[0]}
	lastY := filtered[0].Y

	for _, l := range filtered[1:] {
		if l.Y-lastY > g.Tolerance {
			rows = append(rows, model.Row{Lines: current})
			current = []model.Line{l}
		} else {
			current = append(current, l)
		}
		lastY = l.Y
	}
	rows = append(rows, model.Row{Lines: current})

	return rows
}

// LinesFromSpans builds one line per row cluster, for callers that need
// line-level input such as table boundary detection.
func (g *RowGrouper) LinesFromSpans(spans []model.Span) []model.Line {
	rows := g.GroupSpans(spans)
	lines := make([]model.Line, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, model.Line{Y: r.Y(), Spans: r.Spans()})
	}
	return lines
}

// rowFromSpans wraps a span cluster into a single-line row, spans sorted
// left to right.
func rowFromSpans(spans []model.Span) model.Row {
	sorted := make([]model.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})
	return model.Row{Lines: []model.Line{{Y: spans[0].Y, Spans: sorted}}}
}
