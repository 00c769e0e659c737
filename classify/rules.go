package classify

import (
	"strings"

	"github.com/tsawler/databook/model"
)

// RuleClassifier labels rows with fixed heuristics. It only ever emits
// header, data, summary, or footnote; caption and broken can arrive only
// from a learned vocabulary.
type RuleClassifier struct {
	cfg *compiled

	// MostlyEmptyRatio: a row with fewer non-empty cells than this
	// fraction of its total cells is a footnote.
	MostlyEmptyRatio float64

	// MostlyNumericRatio: a first row with at least this fraction of
	// numeric cells cannot be a header.
	MostlyNumericRatio float64
}

// NewRuleClassifier creates a rule-based classifier for the given keyword
// configuration.
func NewRuleClassifier(cfg Config) (*RuleClassifier, error) {
	compiled, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	return &RuleClassifier{
		cfg:                compiled,
		MostlyEmptyRatio:   0.25,
		MostlyNumericRatio: 0.6,
	}, nil
}

// Classify labels one row. The decision order is fixed: footnote checks
// first, then summary, then header, defaulting to data.
func (c *RuleClassifier) Classify(cells []string, rowIndex, totalRows int) model.Label {
	tokens := make([]string, 0, len(cells))
	for _, cell := range cells {
		if t := strings.TrimSpace(cell); t != "" {
			tokens = append(tokens, strings.ToLower(t))
		}
	}

	if c.isMostlyEmpty(cells, tokens) || c.anyFootnote(tokens) {
		return model.LabelFootnote
	}

	firstCell := ""
	if len(tokens) > 0 {
		firstCell = tokens[0]
	}

	if c.isSummaryCell(firstCell) {
		return model.LabelSummary
	}
	if rowIndex >= totalRows-2 && c.cfg.hasKeyword(firstCell) {
		return model.LabelSummary
	}

	if rowIndex == 0 && !c.isMostlyNumeric(cells) {
		return model.LabelHeader
	}

	return model.LabelData
}

// isMostlyEmpty reports whether fewer than MostlyEmptyRatio of the row's
// cells are non-empty.
func (c *RuleClassifier) isMostlyEmpty(cells, tokens []string) bool {
	if len(cells) == 0 {
		return true
	}
	return float64(len(tokens)) < float64(len(cells))*c.MostlyEmptyRatio
}

// anyFootnote reports whether any non-empty cell matches a footnote
// pattern.
func (c *RuleClassifier) anyFootnote(tokens []string) bool {
	for _, t := range tokens {
		if c.cfg.matchesFootnote(t) {
			return true
		}
	}
	return false
}

// isSummaryCell reports whether the first non-empty cell equals, or
// contains as a substring, a summary keyword.
func (c *RuleClassifier) isSummaryCell(firstCell string) bool {
	if firstCell == "" {
		return false
	}
	return c.cfg.hasKeyword(firstCell)
}

// isMostlyNumeric reports whether at least MostlyNumericRatio of the
// row's cells are numeric.
func (c *RuleClassifier) isMostlyNumeric(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	numeric := 0
	for _, cell := range cells {
		if numericRe.MatchString(strings.TrimSpace(cell)) {
			numeric++
		}
	}
	return float64(numeric) >= float64(len(cells))*c.MostlyNumericRatio
}
