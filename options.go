package databook

import (
	"log/slog"
	"runtime"

	"github.com/tsawler/databook/classify"
	"github.com/tsawler/databook/layout"
)

// ExtractOptions holds configuration for table reconstruction.
type ExtractOptions struct {
	// Geometric thresholds for row grouping and column detection.
	layout layout.Config

	// Table boundary detection thresholds.
	gapThreshold float64
	regionMargin float64

	// Row classification keyword configuration.
	keywords classify.Config

	// Path to a trained classifier artifact. Empty means rules only.
	artifactPath string

	// Number of table regions processed concurrently per page.
	workers int

	logger *slog.Logger
}

// defaultOptions returns the default reconstruction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		layout:       layout.DefaultConfig(),
		gapThreshold: 0.08,
		regionMargin: 0.02,
		keywords:     classify.DefaultConfig(),
		artifactPath: "",
		workers:      runtime.NumCPU(),
		logger:       nil, // nil means slog.Default()
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	newOpts.keywords.SummaryKeywords = append([]string(nil), o.keywords.SummaryKeywords...)
	newOpts.keywords.FootnotePatterns = append([]string(nil), o.keywords.FootnotePatterns...)

	return newOpts
}
