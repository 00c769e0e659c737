package tables

import (
	"regexp"
	"strings"

	"github.com/tsawler/databook/model"
)

// Meta is a table metadata entry consumed by the splitter: the candidate
// title plus where the table lives.
type Meta struct {
	Title   string
	Section string
	Page    int

	// VerticalRange restricts extraction to part of the page, when known.
	VerticalRange *model.Region

	// PDFIndex is the zero-based page index in the source document, when
	// it differs from Page.
	PDFIndex int
}

// SplitMethod records how a multi-table split was confirmed.
type SplitMethod string

const (
	// SplitByRegions means boundary detection found multiple regions.
	SplitByRegions SplitMethod = "regions"

	// SplitByTitle means the title heuristic alone confirmed the split,
	// with no page access.
	SplitByTitle SplitMethod = "title"
)

// TableMeta is one table's metadata after title splitting: its own title,
// region, and position among the tables sharing the page.
type TableMeta struct {
	Meta
	Region    model.Region
	Position  int
	Count     int
	SplitFrom string
	Method    SplitMethod
}

var andSplitRe = regexp.MustCompile(`(?i)\s+and\s+`)

// Splitter splits compound multi-table titles into per-table metadata.
type Splitter struct {
	// Exclusions are lowercase substrings that disqualify a title from
	// splitting even though it contains "and" or a comma. They are known
	// false positives from the source documents.
	Exclusions []string
}

// NewSplitter creates a splitter with the default exclusion list.
func NewSplitter() *Splitter {
	return &Splitter{
		Exclusions: []string{
			"and minnesota",
			"and average",
			"x mallard",
		},
	}
}

// MightSplit reports whether a title might describe multiple tables: it
// contains " and " (case-insensitive) or a comma and matches no exclusion.
func (s *Splitter) MightSplit(title string) bool {
	lower := strings.ToLower(title)
	if !strings.Contains(lower, " and ") && !strings.Contains(title, ",") {
		return false
	}
	for _, excl := range s.Exclusions {
		if strings.Contains(lower, excl) {
			return false
		}
	}
	return true
}

// SplitTitle splits a compound title into parts: on " and " first when
// present, otherwise on commas. Parts are trimmed. A title that yields a
// single part is returned unchanged.
func (s *Splitter) SplitTitle(title string) []string {
	var parts []string
	switch {
	case strings.Contains(strings.ToLower(title), " and "):
		parts = andSplitRe.Split(title, -1)
	case strings.Contains(title, ","):
		parts = strings.Split(title, ",")
	default:
		return []string{title}
	}

	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return []string{title}
	}
	return trimmed
}

// Split resolves a metadata entry into per-table metadata. regions is the
// output of boundary detection for the page, or nil when the page was not
// available. A split happens only when the title indicates multiple tables
// and either boundary detection found more than one region, or, absent
// page access, the title heuristic stands alone. When detection yielded
// fewer regions than title parts, evenly sized regions are synthesized by
// dividing the page height among the parts.
func (s *Splitter) Split(meta Meta, regions []model.Region) []TableMeta {
	single := func() []TableMeta {
		region := model.FullPage
		if meta.VerticalRange != nil {
			region = *meta.VerticalRange
		} else if len(regions) == 1 {
			region = regions[0]
		}
		return []TableMeta{{
			Meta:     meta,
			Region:   region,
			Position: 1,
			Count:    1,
		}}
	}

	if !s.MightSplit(meta.Title) {
		return single()
	}

	confirmedByRegions := len(regions) > 1
	if !confirmedByRegions && regions != nil {
		// Page was inspected and holds one table; trust it over the title.
		return single()
	}

	parts := s.SplitTitle(meta.Title)
	if len(parts) < 2 {
		return single()
	}

	method := SplitByRegions
	if !confirmedByRegions {
		method = SplitByTitle
	}

	if len(regions) < len(parts) {
		regions = evenRegions(len(parts))
	}

	out := make([]TableMeta, 0, len(parts))
	for i, part := range parts {
		tm := TableMeta{
			Meta:      meta,
			Region:    regions[i],
			Position:  i + 1,
			Count:     len(parts),
			SplitFrom: meta.Title,
			Method:    method,
		}
		tm.Meta.Title = part
		out = append(out, tm)
	}
	return out
}

// evenRegions divides the page height equally among n tables.
func evenRegions(n int) []model.Region {
	regions := make([]model.Region, n)
	height := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		regions[i] = model.Region{
			Top:    float64(i) * height,
			Bottom: float64(i+1) * height,
		}
	}
	return regions
}
