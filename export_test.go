package databook

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/databook/model"
)

func sampleRecord() model.Record {
	return model.Record{
		Title:    "Duck Harvest",
		Page:     12,
		Slug:     "duck_harvest",
		Headers:  []string{"Year", "Mallard"},
		Rows:     [][]string{{"1998", "230"}, {"1999", "240"}},
		Position: 1,
		Count:    1,
	}
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, []model.Record{sampleRecord()}, ExportFormatJSON); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	var decoded []model.Record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Title != "Duck Harvest" {
		t.Errorf("decoded = %+v", decoded)
	}

	out := buf.String()
	if !strings.Contains(out, `"table_position": 1`) {
		t.Errorf("JSON missing table_position:\n%s", out)
	}
	if strings.Contains(out, "split_from") {
		t.Errorf("empty split_from should be omitted:\n%s", out)
	}
}

func TestExport_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, ExportFormatJSON); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Export() = %q, want []", got)
	}
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, []model.Record{sampleRecord()}, ExportFormatCSV); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	want := "Year,Mallard\n1998,230\n1999,240\n"
	if buf.String() != want {
		t.Errorf("Export() = %q, want %q", buf.String(), want)
	}
}

func TestExport_CSVSeparatesTables(t *testing.T) {
	second := sampleRecord()
	second.Title = "Goose Harvest"
	second.Headers = []string{"Year", "Canada"}
	second.Rows = [][]string{{"1998", "310"}}

	var buf bytes.Buffer
	if err := Export(&buf, []model.Record{sampleRecord(), second}, ExportFormatCSV); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	blocks := strings.Split(buf.String(), "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("output has %d blocks, want 2:\n%s", len(blocks), buf.String())
	}
	if !strings.HasPrefix(blocks[1], "Year,Canada\n") {
		t.Errorf("second block = %q", blocks[1])
	}
}

func TestExport_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, []model.Record{sampleRecord()}, ExportFormatMarkdown); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Duck Harvest") {
		t.Errorf("markdown missing heading:\n%s", out)
	}
	if !strings.Contains(out, "| Year | Mallard |") {
		t.Errorf("markdown missing header row:\n%s", out)
	}
	if !strings.Contains(out, "| 1998 | 230 |") {
		t.Errorf("markdown missing data row:\n%s", out)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	if err := Export(&bytes.Buffer{}, nil, ExportFormat(42)); err == nil {
		t.Error("Export() should reject an unknown format")
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables"+ExportFormatJSON.FileExtension())
	if err := ExportFile(path, []model.Record{sampleRecord()}, ExportFormatJSON); err != nil {
		t.Fatalf("ExportFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "duck_harvest") {
		t.Errorf("export missing slug:\n%s", data)
	}
}

func TestExportFormat_Strings(t *testing.T) {
	tests := []struct {
		format ExportFormat
		name   string
		ext    string
	}{
		{ExportFormatJSON, "json", ".json"},
		{ExportFormatCSV, "csv", ".csv"},
		{ExportFormatMarkdown, "markdown", ".md"},
		{ExportFormat(42), "unknown", ".txt"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.format.FileExtension(); got != tt.ext {
			t.Errorf("FileExtension() = %q, want %q", got, tt.ext)
		}
	}
}
