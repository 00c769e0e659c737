package databook

import (
	"strings"
	"testing"

	"github.com/tsawler/databook/model"
	"github.com/tsawler/databook/tables"
)

func newTestPipeline(t *testing.T) *pipeline {
	t.Helper()
	p, err := newPipeline(defaultOptions())
	if err != nil {
		t.Fatalf("newPipeline() failed: %v", err)
	}
	return p
}

func span(text string, x, y float64) model.Span {
	return model.Span{Text: text, X: x, Y: y}
}

// harvestPageSpans lays out a single three-column table with a header
// row, two data rows, a summary row, and a trailing footnote.
func harvestPageSpans() []model.Span {
	return []model.Span{
		span("Year", 0.10, 0.10), span("Mallard", 0.40, 0.10), span("Pintail", 0.70, 0.10),
		span("1998", 0.10, 0.16), span("230", 0.40, 0.16), span("120", 0.70, 0.16),
		span("1999", 0.10, 0.22), span("240", 0.40, 0.22), span("130", 0.70, 0.22),
		span("Total", 0.10, 0.28), span("470", 0.40, 0.28), span("250", 0.70, 0.28),
		span("Source: state wildlife agencies", 0.10, 0.34),
	}
}

// twoTablePageSpans lays out two stacked two-column tables separated by a
// vertical gap large enough to register as a table boundary.
func twoTablePageSpans() []model.Span {
	return []model.Span{
		span("Year", 0.10, 0.05), span("Ducks", 0.50, 0.05),
		span("1998", 0.10, 0.10), span("230", 0.50, 0.10),
		span("1999", 0.10, 0.15), span("240", 0.50, 0.15),

		span("Year", 0.10, 0.60), span("Geese", 0.50, 0.60),
		span("1998", 0.10, 0.65), span("310", 0.50, 0.65),
		span("1999", 0.10, 0.70), span("320", 0.50, 0.70),
	}
}

func TestProcessPage_SingleTable(t *testing.T) {
	p := newTestPipeline(t)

	records, warnings := p.processPage(harvestPageSpans(), tables.Meta{
		Title: "Duck Harvest",
		Page:  12,
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if len(records) != 1 {
		t.Fatalf("processPage() = %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Title != "Duck Harvest" || rec.Page != 12 {
		t.Errorf("record identity = %q page %d, want Duck Harvest page 12", rec.Title, rec.Page)
	}
	if rec.Slug != "duck_harvest" {
		t.Errorf("Slug = %q, want duck_harvest", rec.Slug)
	}

	wantHeaders := []string{"Year", "Mallard", "Pintail"}
	if len(rec.Headers) != len(wantHeaders) {
		t.Fatalf("Headers = %v, want %v", rec.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if rec.Headers[i] != h {
			t.Errorf("Headers[%d] = %q, want %q", i, rec.Headers[i], h)
		}
	}

	// The summary row is dropped; only the two year rows remain.
	if len(rec.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(rec.Rows))
	}
	if rec.Rows[0][0] != "1998" || rec.Rows[1][0] != "1999" {
		t.Errorf("data rows = %v", rec.Rows)
	}

	if len(rec.Footnotes) != 1 {
		t.Fatalf("Footnotes = %d, want 1", len(rec.Footnotes))
	}
	if rec.Footnotes[0][0] != "Source: state wildlife agencies" {
		t.Errorf("footnote = %v", rec.Footnotes[0])
	}

	if rec.Position != 1 || rec.Count != 1 || rec.SplitFrom != "" {
		t.Errorf("position = %d/%d split from %q, want 1/1 unsplit",
			rec.Position, rec.Count, rec.SplitFrom)
	}

	if !strings.Contains(rec.RawText, "1998 230 120") {
		t.Errorf("RawText missing data row: %q", rec.RawText)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestProcessPage_SplitsCompoundTitle(t *testing.T) {
	p := newTestPipeline(t)

	records, warnings := p.processPage(twoTablePageSpans(), tables.Meta{
		Title: "Ducks and Geese",
		Page:  7,
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if len(records) != 2 {
		t.Fatalf("processPage() = %d records, want 2", len(records))
	}

	wantTitles := []string{"Ducks", "Geese"}
	for i, rec := range records {
		if rec.Title != wantTitles[i] {
			t.Errorf("record %d title = %q, want %q", i, rec.Title, wantTitles[i])
		}
		if rec.Position != i+1 || rec.Count != 2 {
			t.Errorf("record %d position = %d/%d, want %d/2", i, rec.Position, rec.Count, i+1)
		}
		if rec.SplitFrom != "Ducks and Geese" {
			t.Errorf("record %d SplitFrom = %q", i, rec.SplitFrom)
		}
		if len(rec.Rows) != 2 {
			t.Errorf("record %d has %d rows, want 2", i, len(rec.Rows))
		}
	}

	// Each table keeps only its own region's values.
	if records[0].Rows[0][1] != "230" {
		t.Errorf("first table row = %v", records[0].Rows[0])
	}
	if records[1].Rows[0][1] != "310" {
		t.Errorf("second table row = %v", records[1].Rows[0])
	}
}

func TestProcessPage_HonorsVerticalRange(t *testing.T) {
	p := newTestPipeline(t)

	records, warnings := p.processPage(twoTablePageSpans(), tables.Meta{
		Title:         "Goose Harvest",
		Page:          7,
		VerticalRange: &model.Region{Top: 0.55, Bottom: 1.0},
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if len(records) != 1 {
		t.Fatalf("processPage() = %d records, want 1", len(records))
	}

	rec := records[0]
	if len(rec.Headers) != 2 || rec.Headers[1] != "Geese" {
		t.Errorf("Headers = %v, want the lower table's header", rec.Headers)
	}
	if len(rec.Rows) != 2 || rec.Rows[0][1] != "310" {
		t.Errorf("Rows = %v, want the lower table's data", rec.Rows)
	}
}

func TestProcessPage_DiscardsTableWithoutData(t *testing.T) {
	p := newTestPipeline(t)

	spans := []model.Span{
		span("Source: preliminary data", 0.10, 0.50),
	}
	records, warnings := p.processPage(spans, tables.Meta{Title: "Empty", Page: 3})
	if len(records) != 0 {
		t.Fatalf("processPage() = %d records, want 0", len(records))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	if !strings.Contains(warnings[0].Message, "no valid data rows") {
		t.Errorf("warning = %q", warnings[0].Message)
	}
	if warnings[0].Page != 3 || warnings[0].Table != "Empty" {
		t.Errorf("warning context = page %d table %q", warnings[0].Page, warnings[0].Table)
	}
}

func TestProcessPage_EmptyPage(t *testing.T) {
	p := newTestPipeline(t)

	records, warnings := p.processPage(nil, tables.Meta{Title: "Missing", Page: 9})
	if len(records) != 0 {
		t.Fatalf("processPage() = %d records, want 0", len(records))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "no rows") {
		t.Errorf("warnings = %v", warnings)
	}
}
