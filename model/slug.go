package model

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLen caps slug length so database table names stay manageable.
const maxSlugLen = 50

// Slugify converts a table title into a lowercase identifier suitable for
// use as a database table name: diacritics folded, every run of
// non-alphanumeric characters collapsed to a single underscore.
func Slugify(title string) string {
	folded := foldDiacritics(title)

	var sb strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(sb.String(), "_")
}

// SlugForRecord returns the slug for a record's title, falling back to a
// page-based name when the title produces an empty or oversized slug.
func SlugForRecord(title string, page int) string {
	slug := Slugify(title)
	if slug == "" || len(slug) > maxSlugLen {
		return fmt.Sprintf("table_page_%d", page)
	}
	return slug
}

// foldDiacritics strips combining marks after NFD decomposition, so
// accented characters fold to their ASCII bases.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
