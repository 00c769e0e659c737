package databook

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/databook/model"
)

// ExportFormat defines the available export formats.
type ExportFormat int

const (
	// ExportFormatJSON exports as a JSON array of records
	ExportFormatJSON ExportFormat = iota
	// ExportFormatCSV exports as comma-separated values, one table per block
	ExportFormatCSV
	// ExportFormatMarkdown exports as markdown tables
	ExportFormatMarkdown
)

// String returns a human-readable representation of the export format.
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSON:
		return "json"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatJSON:
		return ".json"
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// Export writes records to w in the given format.
//
// JSON output is a pretty-printed array. CSV output writes each table as
// a header row followed by its data rows, with a blank line between
// tables; footnotes are not included. Markdown output renders each table
// with its title as a section heading.
func Export(w io.Writer, records []model.Record, format ExportFormat) error {
	switch format {
	case ExportFormatJSON:
		return exportJSON(w, records)
	case ExportFormatCSV:
		return exportCSV(w, records)
	case ExportFormatMarkdown:
		return exportMarkdown(w, records)
	default:
		return fmt.Errorf("unsupported export format: %d", format)
	}
}

// ExportFile writes records to a file in the given format.
func ExportFile(path string, records []model.Record, format ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Export(f, records, format); err != nil {
		return err
	}
	return f.Close()
}

func exportJSON(w io.Writer, records []model.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if records == nil {
		records = []model.Record{}
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

func exportCSV(w io.Writer, records []model.Record) error {
	for i, rec := range records {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

		cw := csv.NewWriter(w)
		if len(rec.Headers) > 0 {
			if err := cw.Write(rec.Headers); err != nil {
				return fmt.Errorf("writing header for %q: %w", rec.Title, err)
			}
		}
		for _, row := range rec.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row for %q: %w", rec.Title, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing %q: %w", rec.Title, err)
		}
	}
	return nil
}

func exportMarkdown(w io.Writer, records []model.Record) error {
	for i := range records {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, records[i].ToMarkdown()); err != nil {
			return err
		}
	}
	return nil
}
