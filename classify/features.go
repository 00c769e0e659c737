package classify

import (
	"regexp"
	"strings"
	"unicode"
)

// NumFeatures is the length of the feature vector. The ordering is
// positional and fixed; any persisted model must be trained against
// exactly this ordering.
const NumFeatures = 7

var (
	yearRe    = regexp.MustCompile(`^\d{4}(-\d{2})?$`)
	numericRe = regexp.MustCompile(`^[\d,.]+$`)
)

// Features is the fixed numeric feature vector computed for one row.
type Features struct {
	StartsWithYear    float64
	HasSummaryKeyword float64
	HasFootnote       float64
	NumTokens         float64
	NumNumeric        float64
	PctNumeric        float64
	UpperRatio        float64
}

// Vector returns the features in their fixed positional order.
func (f Features) Vector() []float64 {
	return []float64{
		f.StartsWithYear,
		f.HasSummaryKeyword,
		f.HasFootnote,
		f.NumTokens,
		f.NumNumeric,
		f.PctNumeric,
		f.UpperRatio,
	}
}

// FeatureNames returns the feature names in vector order.
func FeatureNames() []string {
	return []string{
		"starts_with_year",
		"has_summary_keyword",
		"has_footnote",
		"num_tokens",
		"num_numeric",
		"pct_numeric",
		"upper_ratio",
	}
}

// FeatureExtractor computes feature vectors for rows. Extraction is a
// total function: it never fails, and empty input yields zero values.
type FeatureExtractor struct {
	cfg *compiled
}

// NewFeatureExtractor creates an extractor for the given keyword config.
func NewFeatureExtractor(cfg Config) (*FeatureExtractor, error) {
	compiled, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	return &FeatureExtractor{cfg: compiled}, nil
}

// Extract computes the feature vector for a row of cells. Tokens are the
// trimmed non-empty cells.
func (e *FeatureExtractor) Extract(cells []string) Features {
	tokens := make([]string, 0, len(cells))
	for _, c := range cells {
		if t := strings.TrimSpace(c); t != "" {
			tokens = append(tokens, t)
		}
	}

	var f Features
	f.NumTokens = float64(len(tokens))
	if len(tokens) == 0 {
		return f
	}

	if yearRe.MatchString(tokens[0]) {
		f.StartsWithYear = 1
	}

	rowText := strings.Join(tokens, " ")
	if e.cfg.hasKeyword(rowText) {
		f.HasSummaryKeyword = 1
	}
	if e.cfg.matchesFootnote(rowText) {
		f.HasFootnote = 1
	}

	numeric := 0
	upper := 0
	for _, tok := range tokens {
		if numericRe.MatchString(tok) {
			numeric++
		}
		if isUpperToken(tok) {
			upper++
		}
	}
	f.NumNumeric = float64(numeric)
	f.PctNumeric = float64(numeric) / f.NumTokens
	f.UpperRatio = float64(upper) / f.NumTokens

	return f
}

// isUpperToken reports whether a token is fully uppercase: it contains at
// least one letter and no lowercase letters.
func isUpperToken(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
