package tables

import (
	"sort"

	"github.com/tsawler/databook/model"
)

// BoundaryDetector finds table regions on a page by looking for the single
// largest vertical gap between lines. A page is split into at most two
// regions; the heuristic never recurses to find a third table.
type BoundaryDetector struct {
	// GapThreshold is the smallest normalized y-gap considered significant.
	GapThreshold float64

	// Margin is added around the splitting gap so neither region clips
	// the rows at its edge.
	Margin float64
}

// NewBoundaryDetector creates a boundary detector with default thresholds.
func NewBoundaryDetector() *BoundaryDetector {
	return &BoundaryDetector{
		GapThreshold: 0.08,
		Margin:       0.02,
	}
}

// Detect returns the table regions of a page given its lines. With no
// significant gap, or no lines at all, the whole page is a single region.
// Otherwise the single largest gap splits the page into exactly two
// regions, offset by the margin into the gap.
func (d *BoundaryDetector) Detect(lines []model.Line) []model.Region {
	if len(lines) < 2 {
		return []model.Region{model.FullPage}
	}

	sorted := make([]model.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var gapTop, gapBottom float64
	found := false
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Y - sorted[i-1].Y
		if gap <= d.GapThreshold {
			continue
		}
		if !found || gap > gapBottom-gapTop {
			gapTop = sorted[i-1].Y
			gapBottom = sorted[i].Y
			found = true
		}
	}

	if !found {
		return []model.Region{model.FullPage}
	}

	return []model.Region{
		{Top: 0.0, Bottom: gapTop + d.Margin},
		{Top: gapBottom - d.Margin, Bottom: 1.0},
	}
}
