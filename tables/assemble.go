package tables

import (
	"strings"

	"github.com/tsawler/databook/model"
)

// Parts holds the assembled pieces of one table region: the merged header
// row, the valid data rows, and the footnote rows kept verbatim.
type Parts struct {
	Headers   []string
	Data      [][]string
	Footnotes [][]string
}

// Assembler partitions a region's labeled rows into a table's parts.
type Assembler struct {
	// MinDataCells is the minimum number of non-empty cells for a data
	// row to be kept.
	MinDataCells int
}

// NewAssembler creates an assembler with default settings.
func NewAssembler() *Assembler {
	return &Assembler{MinDataCells: 2}
}

// Assemble builds table parts from labeled rows. Header rows are merged
// column-wise; with none, the region's first row becomes the header. Data
// rows keep only rows with at least MinDataCells non-empty cells. Summary,
// caption, and broken rows are dropped; footnote rows are kept verbatim.
// ok is false when no valid data rows remain, in which case the table
// must be discarded rather than emitted empty.
func (a *Assembler) Assemble(rows []model.LabeledRow) (parts Parts, ok bool) {
	var headerRows [][]string
	for _, r := range rows {
		switch r.Label {
		case model.LabelHeader:
			headerRows = append(headerRows, r.Cells)
		case model.LabelData:
			if len(r.NonEmptyCells()) >= a.MinDataCells {
				parts.Data = append(parts.Data, r.Cells)
			}
		case model.LabelFootnote:
			parts.Footnotes = append(parts.Footnotes, r.Cells)
		}
	}

	if len(headerRows) > 0 {
		parts.Headers = mergeHeaderRows(headerRows)
	} else if len(rows) > 0 {
		parts.Headers = rows[0].Cells
	}

	if len(parts.Data) == 0 {
		return Parts{}, false
	}
	return parts, true
}

// mergeHeaderRows concatenates non-empty cell text per column position
// across header rows, separated by a space.
func mergeHeaderRows(headerRows [][]string) []string {
	if len(headerRows) == 1 {
		return headerRows[0]
	}

	width := 0
	for _, row := range headerRows {
		if len(row) > width {
			width = len(row)
		}
	}

	merged := make([]string, width)
	for _, row := range headerRows {
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if merged[i] == "" {
				merged[i] = cell
			} else {
				merged[i] += " " + cell
			}
		}
	}
	return merged
}
