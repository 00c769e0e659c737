package databook

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem encountered while reconstructing
// tables. Processing continues past warnings; they exist so callers can
// audit what was skipped or degraded.
type Warning struct {
	// Page is the 1-based page number, 0 when the warning is not tied
	// to a page.
	Page int

	// Table is the title of the affected table, when known.
	Table string

	// Message describes the problem.
	Message string
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	switch {
	case w.Page > 0 && w.Table != "":
		return fmt.Sprintf("page %d (%s): %s", w.Page, w.Table, w.Message)
	case w.Page > 0:
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	case w.Table != "":
		return fmt.Sprintf("%s: %s", w.Table, w.Message)
	default:
		return w.Message
	}
}

// FormatWarnings joins warnings into a single string suitable for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
