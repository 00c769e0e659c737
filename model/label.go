package model

import "fmt"

// Label classifies a reconstructed table row. The zero value is LabelHeader.
type Label int

const (
	LabelHeader Label = iota
	LabelData
	LabelSummary
	LabelFootnote
	LabelCaption
	LabelBroken
)

// String returns the label's name.
func (l Label) String() string {
	switch l {
	case LabelHeader:
		return "header"
	case LabelData:
		return "data"
	case LabelSummary:
		return "summary"
	case LabelFootnote:
		return "footnote"
	case LabelCaption:
		return "caption"
	case LabelBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// ParseLabel converts a label name to a Label.
func ParseLabel(s string) (Label, error) {
	switch s {
	case "header":
		return LabelHeader, nil
	case "data":
		return LabelData, nil
	case "summary":
		return LabelSummary, nil
	case "footnote":
		return LabelFootnote, nil
	case "caption":
		return LabelCaption, nil
	case "broken":
		return LabelBroken, nil
	default:
		return 0, fmt.Errorf("unknown row label %q", s)
	}
}

// Priority returns the label's rank for conflict resolution. Labels are
// declared in priority order, header lowest and broken highest.
func (l Label) Priority() int {
	return int(l)
}

// MergeLabels resolves conflicting votes for the same row: the label with
// the higher priority wins.
func MergeLabels(a, b Label) Label {
	if b.Priority() > a.Priority() {
		return b
	}
	return a
}

// LabeledRow is a reconstructed row of cells together with its assigned
// label and position within the table.
type LabeledRow struct {
	Cells     []string
	Label     Label
	RowIndex  int
	TotalRows int
}

// NonEmptyCells returns the row's trimmed, non-empty cells in order.
func (r LabeledRow) NonEmptyCells() []string {
	return nonEmpty(r.Cells)
}
