package layout

import (
	"strings"

	"github.com/tsawler/databook/model"
)

// AssignCells distributes each row's span text into cells delimited by the
// column boundaries. A span lands in the first column whose range contains
// its x-position; a span at or beyond the last boundary is dropped, a
// known limitation of first-match assignment. Cells are trimmed after all
// spans are placed.
func AssignCells(rows []model.Row, boundaries model.Boundaries) [][]string {
	cols := boundaries.ColumnCount()
	if cols == 0 {
		return nil
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignRow(row, boundaries, cols))
	}
	return out
}

func assignRow(row model.Row, boundaries model.Boundaries, cols int) []string {
	cells := make([]string, cols)
	for _, line := range row.Lines {
		for _, span := range line.Spans {
			idx := boundaries.ColumnFor(span.X)
			if idx < 0 {
				continue
			}
			cells[idx] += span.Text + " "
		}
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
