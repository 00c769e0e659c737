package model

import (
	"fmt"
	"strings"
)

// Record is the terminal artifact of table reconstruction: one table with
// its merged header, filtered data rows, and retained footnotes, plus the
// metadata needed by a persistence collaborator.
type Record struct {
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`
	Page    int    `json:"page"`
	Slug    string `json:"slug"`

	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	Footnotes [][]string `json:"footnotes,omitempty"`

	// Position and Count place this table among the tables that share a
	// page. Position is 1-based; 1 <= Position <= Count always holds.
	Position int `json:"table_position"`
	Count    int `json:"table_count"`

	// SplitFrom is the original compound title when this record was
	// produced by splitting a multi-table title, empty otherwise.
	SplitFrom string `json:"split_from,omitempty"`

	// RawText is the joined text of the table's region, kept for callers
	// that match captions downstream.
	RawText string `json:"raw_text,omitempty"`
}

// Validate checks the record's structural invariants.
func (r *Record) Validate() error {
	if r.Count < 1 {
		return fmt.Errorf("record %q: table count %d must be at least 1", r.Title, r.Count)
	}
	if r.Position < 1 || r.Position > r.Count {
		return fmt.Errorf("record %q: table position %d outside 1..%d", r.Title, r.Position, r.Count)
	}
	return nil
}

// ColCount returns the number of header columns.
func (r *Record) ColCount() int {
	return len(r.Headers)
}

// RowCount returns the number of data rows.
func (r *Record) RowCount() int {
	return len(r.Rows)
}

// ToMarkdown renders the record as a markdown table preceded by its title.
func (r *Record) ToMarkdown() string {
	var sb strings.Builder

	if r.Title != "" {
		sb.WriteString("## ")
		sb.WriteString(r.Title)
		sb.WriteString("\n\n")
	}

	if len(r.Headers) > 0 {
		writeMarkdownRow(&sb, r.Headers)
		sep := make([]string, len(r.Headers))
		for i := range sep {
			sep[i] = "---"
		}
		writeMarkdownRow(&sb, sep)
	}

	for _, row := range r.Rows {
		writeMarkdownRow(&sb, row)
	}

	for _, fn := range r.Footnotes {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(nonEmpty(fn), " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	for _, cell := range cells {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")
}

// nonEmpty returns the trimmed, non-empty entries of cells in order.
func nonEmpty(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		if t := strings.TrimSpace(c); t != "" {
			out = append(out, t)
		}
	}
	return out
}
