package databook

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/databook/classify"
	"github.com/tsawler/databook/layout"
	"github.com/tsawler/databook/model"
	"github.com/tsawler/databook/tables"
)

// pipeline composes the reconstruction stages: row grouping, boundary
// detection, title splitting, column detection, cell assignment, row
// classification, and table assembly.
type pipeline struct {
	rows       *layout.RowGrouper
	columns    *layout.ColumnDetector
	boundary   *tables.BoundaryDetector
	splitter   *tables.Splitter
	assembler  *tables.Assembler
	classifier classify.Classifier
	workers    int
}

// newPipeline builds the reconstruction pipeline from options.
func newPipeline(opts ExtractOptions) (*pipeline, error) {
	classifier, err := classify.NewClassifier(opts.keywords, opts.artifactPath, opts.logger)
	if err != nil {
		return nil, err
	}

	cfg := opts.layout
	return &pipeline{
		rows: &layout.RowGrouper{Tolerance: cfg.RowTolerance},
		columns: &layout.ColumnDetector{
			MinGap:   cfg.MinColumnGap,
			MinWidth: cfg.MinColumnWidth,
			MaxGaps:  cfg.MaxColumnGaps,
		},
		boundary: &tables.BoundaryDetector{
			GapThreshold: opts.gapThreshold,
			Margin:       opts.regionMargin,
		},
		splitter:   tables.NewSplitter(),
		assembler:  tables.NewAssembler(),
		classifier: classifier,
		workers:    opts.workers,
	}, nil
}

// processPage reconstructs every table a metadata entry describes on one
// page. Boundary detection decides whether the page holds one or two
// tables; the splitter reconciles that with the title. Regions are then
// processed concurrently, and results collected in page order. Failures
// inside a region degrade to warnings so the remaining tables still come
// through.
func (p *pipeline) processPage(spans []model.Span, meta tables.Meta) ([]model.Record, []Warning) {
	lines := p.rows.LinesFromSpans(spans)

	var regions []model.Region
	if len(lines) > 0 {
		regions = p.boundary.Detect(lines)
	}

	splits := p.splitter.Split(meta, regions)

	recs := make([]*model.Record, len(splits))
	warns := make([][]Warning, len(splits))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, tm := range splits {
		i, tm := i, tm
		g.Go(func() error {
			recs[i], warns[i] = p.processRegion(spans, tm)
			return nil
		})
	}
	g.Wait() // workers never return errors; failures become warnings

	var records []model.Record
	var warnings []Warning
	for i := range splits {
		if recs[i] != nil {
			records = append(records, *recs[i])
		}
		warnings = append(warnings, warns[i]...)
	}
	return records, warnings
}

// processRegion reconstructs one table from the spans inside its region.
// A nil record means the table was skipped; the warnings say why.
func (p *pipeline) processRegion(spans []model.Span, tm tables.TableMeta) (*model.Record, []Warning) {
	var regionSpans []model.Span
	for _, s := range spans {
		if tm.Region.Contains(s.Y) {
			regionSpans = append(regionSpans, s)
		}
	}

	rows := p.rows.GroupSpans(regionSpans)
	if len(rows) == 0 {
		return nil, []Warning{{
			Page:    tm.Page,
			Table:   tm.Title,
			Message: "no rows in table region",
		}}
	}

	boundaries := p.columns.Detect(regionSpans)
	if boundaries.ColumnCount() == 0 {
		return nil, []Warning{{
			Page:    tm.Page,
			Table:   tm.Title,
			Message: "no column boundaries detected; table skipped",
		}}
	}

	cells := layout.AssignCells(rows, boundaries)
	labeled := classify.ClassifyRows(p.classifier, cells)

	parts, ok := p.assembler.Assemble(labeled)
	if !ok {
		return nil, []Warning{{
			Page:    tm.Page,
			Table:   tm.Title,
			Message: "no valid data rows; table discarded",
		}}
	}

	rec := &model.Record{
		Title:     tm.Title,
		Section:   tm.Section,
		Page:      tm.Page,
		Slug:      model.SlugForRecord(tm.Title, tm.Page),
		Headers:   parts.Headers,
		Rows:      parts.Data,
		Footnotes: parts.Footnotes,
		Position:  tm.Position,
		Count:     tm.Count,
		SplitFrom: tm.SplitFrom,
		RawText:   rawText(rows),
	}
	return rec, nil
}

// rawText joins the region's row text top to bottom, for callers that
// match captions downstream.
func rawText(rows []model.Row) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, r.Text())
	}
	return strings.Join(parts, "\n")
}
