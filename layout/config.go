package layout

// Config holds the geometric thresholds used for grid reconstruction.
// All values are normalized page fractions. The defaults are empirically
// tuned for the flyway databook family of documents; recalibrate per
// document family rather than editing call sites.
type Config struct {
	// RowTolerance is the maximum y-distance for two spans to be
	// considered part of the same row.
	RowTolerance float64

	// MinColumnGap is the smallest x-gap between consecutive span
	// positions that can start a new column.
	MinColumnGap float64

	// MinColumnWidth is the minimum spacing between adjacent column
	// boundaries; closer boundaries are merged.
	MinColumnWidth float64

	// MaxColumnGaps caps how many candidate gaps are kept, largest first.
	MaxColumnGaps int
}

// DefaultConfig returns the default grid reconstruction thresholds.
func DefaultConfig() Config {
	return Config{
		RowTolerance:   0.015,
		MinColumnGap:   0.02,
		MinColumnWidth: 0.05,
		MaxColumnGaps:  10,
	}
}
