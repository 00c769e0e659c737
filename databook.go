// Package databook provides a fluent API for reconstructing tabular data
// from the text layer of statistical report PDFs.
//
// Basic usage:
//
//	records, warnings, err := databook.Open("databook.pdf").
//	    Tables(tables.Meta{Title: "Duck Harvest", Page: 12}).
//	    Records()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", databook.FormatWarnings(warnings))
//	}
//
// With no table metadata, every page is processed as a single untitled
// table. For advanced use cases the lower-level layout, tables, classify,
// and ingest packages are also available.
package databook

import (
	"github.com/tsawler/databook/ingest"
	"github.com/tsawler/databook/model"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The returned Extractor must be closed when done, either explicitly via
// Close() or implicitly when calling a terminal operation like Records().
//
// Example:
//
//	records, warnings, err := databook.Open("databook.pdf").Records()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened ingest.Reader.
// This is useful when you need more control over the reader lifecycle.
// Note: the caller is responsible for closing the reader.
//
// Example:
//
//	r, err := ingest.Open("databook.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	records, warnings, err := databook.FromReader(r).Records()
func FromReader(r *ingest.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// FromSpans creates an Extractor over positioned spans already extracted
// from a page, bypassing PDF access entirely. Spans for further pages can
// be added with AddPage.
//
// Example:
//
//	records, warnings, err := databook.FromSpans(1, spans).Records()
func FromSpans(page int, spans []model.Span) *Extractor {
	return &Extractor{
		spans:   map[int][]model.Span{page: spans},
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := databook.Must(databook.Open("databook.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords is a helper that wraps a call to Records() and panics if
// the error is non-nil. It discards warnings and returns just the records.
//
// Example:
//
//	records := databook.MustRecords(databook.Open("databook.pdf").Records())
func MustRecords(records []model.Record, _ []Warning, err error) []model.Record {
	if err != nil {
		panic(err)
	}
	return records
}
