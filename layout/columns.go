package layout

import (
	"sort"

	"github.com/tsawler/databook/model"
)

// ColumnDetector derives column boundaries from gaps in span x-positions.
type ColumnDetector struct {
	// MinGap is the smallest x-gap that can become a column boundary.
	MinGap float64

	// MinWidth is the minimum spacing between adjacent boundaries.
	MinWidth float64

	// MaxGaps caps how many candidate gaps are kept, largest first.
	MaxGaps int
}

// NewColumnDetector creates a column detector with default thresholds.
func NewColumnDetector() *ColumnDetector {
	cfg := DefaultConfig()
	return &ColumnDetector{
		MinGap:   cfg.MinColumnGap,
		MinWidth: cfg.MinColumnWidth,
		MaxGaps:  cfg.MaxColumnGaps,
	}
}

// candidateGap is a qualifying x-gap and the midpoint boundary it implies.
type candidateGap struct {
	size     float64
	midpoint float64
}

// Detect computes column boundaries from all spans of one table region.
// X-positions are sorted and consecutive gaps wider than MinGap become
// boundary candidates at the gap midpoint. The MaxGaps largest candidates
// are kept (ties broken by earlier position), sentinels 0 and 1 added, and
// boundaries closer together than MinWidth merged keeping the earliest.
// With no spans the result is empty; callers must treat a region with
// empty boundaries as having zero columns and skip it.
func (d *ColumnDetector) Detect(spans []model.Span) model.Boundaries {
	if len(spans) == 0 {
		return nil
	}

	xs := make([]float64, 0, len(spans))
	for _, s := range spans {
		xs = append(xs, s.X)
	}
	sort.Float64s(xs)

	var candidates []candidateGap
	for i := 1; i < len(xs); i++ {
		gap := xs[i] - xs[i-1]
		if gap > d.MinGap {
			candidates = append(candidates, candidateGap{
				size:     gap,
				midpoint: (xs[i-1] + xs[i]) / 2,
			})
		}
	}

	// Largest gaps first; equal gaps keep page order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].size > candidates[j].size
	})
	if len(candidates) > d.MaxGaps {
		candidates = candidates[:d.MaxGaps]
	}

	boundaries := make([]float64, 0, len(candidates)+2)
	boundaries = append(boundaries, 0.0)
	for _, c := range candidates {
		boundaries = append(boundaries, c.midpoint)
	}
	boundaries = append(boundaries, 1.0)
	sort.Float64s(boundaries)

	return model.Boundaries(d.mergeClose(boundaries))
}

// mergeClose drops boundaries that crowd the previous kept one, so every
// column is at least MinWidth wide.
func (d *ColumnDetector) mergeClose(boundaries []float64) []float64 {
	cleaned := []float64{boundaries[0]}
	for _, b := range boundaries[1:] {
		if b-cleaned[len(cleaned)-1] > d.MinWidth {
			cleaned = append(cleaned, b)
		}
	}
	return cleaned
}
