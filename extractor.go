package databook

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/databook/classify"
	"github.com/tsawler/databook/ingest"
	"github.com/tsawler/databook/layout"
	"github.com/tsawler/databook/model"
	"github.com/tsawler/databook/tables"
)

// Extractor provides a fluent interface for reconstructing tables from
// PDF files or pre-extracted spans. Each configuration method returns a
// new Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string
	spans    map[int][]model.Span // in-memory source, keyed by page

	// Reader (PDF source only)
	reader       *ingest.Reader
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Table metadata to process; empty means one untitled table per page.
	metas []tables.Meta

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	newExt := &Extractor{
		filename:     e.filename,
		spans:        e.spans,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		metas:        append([]tables.Meta(nil), e.metas...),
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
	return newExt
}

// ensureReader opens the PDF reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened || e.spans != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	r, err := ingest.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Tables specifies the table metadata entries to process. Multiple calls
// are cumulative. Compound titles are split into per-table records when
// the page layout confirms multiple tables.
//
// Example:
//
//	records, _, err := databook.Open("databook.pdf").
//	    Tables(tables.Meta{Title: "Duck Harvest", Page: 12}).
//	    Records()
func (e *Extractor) Tables(metas ...tables.Meta) *Extractor {
	newExt := e.clone()
	newExt.metas = append(newExt.metas, metas...)
	return newExt
}

// AddPage adds pre-extracted spans for a page to an in-memory source.
// It has no effect on PDF-backed extractors.
func (e *Extractor) AddPage(page int, spans []model.Span) *Extractor {
	newExt := e.clone()
	if newExt.spans != nil {
		pages := make(map[int][]model.Span, len(newExt.spans)+1)
		for p, s := range newExt.spans {
			pages[p] = s
		}
		pages[page] = spans
		newExt.spans = pages
	}
	return newExt
}

// LayoutConfig overrides the geometric thresholds used for row grouping
// and column detection.
//
// Example:
//
//	cfg := layout.DefaultConfig()
//	cfg.RowTolerance = 0.02
//	records, _, err := databook.Open("scan.pdf").LayoutConfig(cfg).Records()
func (e *Extractor) LayoutConfig(cfg layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layout = cfg
	return newExt
}

// Keywords overrides the keyword configuration used for rule-based row
// classification.
func (e *Extractor) Keywords(cfg classify.Config) *Extractor {
	newExt := e.clone()
	newExt.options.keywords = cfg
	return newExt
}

// KeywordsFile loads the keyword configuration from a YAML file. A load
// failure is recorded and surfaced by the terminal operation.
//
// Example:
//
//	records, _, err := databook.Open("databook.pdf").
//	    KeywordsFile("keywords.yaml").
//	    Records()
func (e *Extractor) KeywordsFile(path string) *Extractor {
	newExt := e.clone()
	cfg, err := classify.LoadConfig(path)
	if err != nil {
		newExt.err = fmt.Errorf("loading keyword config: %w", err)
		return newExt
	}
	newExt.options.keywords = cfg
	return newExt
}

// ClassifierArtifact sets the path to a trained row classifier artifact.
// An artifact that cannot be loaded degrades to rule-based classification
// with a logged warning rather than failing extraction.
func (e *Extractor) ClassifierArtifact(path string) *Extractor {
	newExt := e.clone()
	newExt.options.artifactPath = path
	return newExt
}

// Workers sets how many table regions are processed concurrently per
// page. Values below 1 are ignored.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n >= 1 {
		newExt.options.workers = n
	}
	return newExt
}

// Logger sets the logger used to report classification degradation.
func (e *Extractor) Logger(log *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = log
	return newExt
}

// ============================================================================
// Terminal Operations (execute reconstruction and return results)
// ============================================================================

// Records reconstructs the configured tables and returns them as records.
// This is a terminal operation that closes the underlying reader.
//
// Returns the records, any warnings encountered during processing, and an
// error if reconstruction could not run at all. Warnings indicate
// non-fatal issues (e.g., a region with no detectable columns) where a
// table was skipped but processing continued.
//
// Example:
//
//	records, warnings, err := databook.Open("databook.pdf").Records()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", databook.FormatWarnings(warnings))
//	}
func (e *Extractor) Records() ([]model.Record, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	p, err := newPipeline(e.options)
	if err != nil {
		return nil, nil, err
	}

	warnings := append([]Warning(nil), e.warnings...)

	if e.spans != nil {
		return e.recordsFromSpans(p, warnings)
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	metas := e.metas
	if len(metas) == 0 {
		metas = make([]tables.Meta, 0, e.reader.NumPages())
		for page := 1; page <= e.reader.NumPages(); page++ {
			metas = append(metas, tables.Meta{Page: page})
		}
	}

	var records []model.Record
	for _, meta := range metas {
		pageNum := meta.Page
		if meta.PDFIndex > 0 {
			pageNum = meta.PDFIndex + 1
		}

		spans, err := e.reader.PageSpans(pageNum)
		if err != nil {
			warnings = append(warnings, Warning{
				Page:    meta.Page,
				Table:   meta.Title,
				Message: fmt.Sprintf("page extraction failed: %v", err),
			})
			continue
		}

		recs, ws := p.processPage(spans, meta)
		records = append(records, recs...)
		warnings = append(warnings, ws...)
	}

	return records, warnings, nil
}

// recordsFromSpans runs reconstruction over the in-memory span source.
func (e *Extractor) recordsFromSpans(p *pipeline, warnings []Warning) ([]model.Record, []Warning, error) {
	metas := e.metas
	if len(metas) == 0 {
		pages := make([]int, 0, len(e.spans))
		for page := range e.spans {
			pages = append(pages, page)
		}
		sort.Ints(pages)
		for _, page := range pages {
			metas = append(metas, tables.Meta{Page: page})
		}
	}

	var records []model.Record
	for _, meta := range metas {
		spans, ok := e.spans[meta.Page]
		if !ok {
			warnings = append(warnings, Warning{
				Page:    meta.Page,
				Table:   meta.Title,
				Message: "no spans provided for page",
			})
			continue
		}

		recs, ws := p.processPage(spans, meta)
		records = append(records, recs...)
		warnings = append(warnings, ws...)
	}

	return records, warnings, nil
}

// Markdown reconstructs the configured tables and renders them as a
// markdown document, one table per section. This is a terminal operation
// that closes the underlying reader.
//
// Example:
//
//	md, warnings, err := databook.Open("databook.pdf").Markdown()
func (e *Extractor) Markdown() (string, []Warning, error) {
	records, warnings, err := e.Records()
	if err != nil {
		return "", warnings, err
	}

	parts := make([]string, 0, len(records))
	for i := range records {
		parts = append(parts, records[i].ToMarkdown())
	}
	return strings.Join(parts, "\n"), warnings, nil
}

// PageCount returns the total number of pages in the source document.
// For in-memory span sources this is the number of pages with spans.
// Note: this does NOT close the reader, allowing further operations.
//
// Example:
//
//	ext := databook.Open("databook.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	if e.spans != nil {
		return len(e.spans), nil
	}

	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.reader.NumPages(), nil
}
