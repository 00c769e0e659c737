package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/databook/model"
)

// Letter-size fallback when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Reader extracts positioned spans from a PDF file.
type Reader struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens a PDF for span extraction. The caller must Close it.
func Open(path string) (*Reader, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Reader{file: f, reader: r}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// NumPages returns the page count.
func (r *Reader) NumPages() int {
	return r.reader.NumPage()
}

// PageSpans extracts the positioned spans of a page (1-based index).
// X is normalized against page width; Y against page height, measured
// from the top of the page so rows read top to bottom in ascending Y.
func (r *Reader) PageSpans(pageNum int) ([]model.Span, error) {
	if pageNum < 1 || pageNum > r.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", pageNum, r.reader.NumPage())
	}

	page := r.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d is missing", pageNum)
	}

	width, height := pageSize(page)

	var spans []model.Span
	for _, t := range page.Content().Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		spans = append(spans, model.Span{
			Text: t.S,
			X:    clamp01(t.X / width),
			// PDF y grows upward from the bottom edge; flip it.
			Y:    clamp01(1 - t.Y/height),
			Font: t.Font,
			Size: t.FontSize,
		})
	}
	return spans, nil
}

// pageSize reads the page's MediaBox, falling back to US letter when the
// entry is absent or malformed. Corrupt MediaBox values can panic inside
// the pdf library, so the lookup is recovered.
func pageSize(page pdf.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	defer func() {
		if r := recover(); r != nil {
			width, height = defaultPageWidth, defaultPageHeight
		}
	}()

	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Kind() != pdf.Array || box.Len() != 4 {
		return width, height
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v := box.Index(i)
		switch v.Kind() {
		case pdf.Integer:
			coords[i] = float64(v.Int64())
		case pdf.Real:
			coords[i] = v.Float64()
		default:
			return width, height
		}
	}

	w := coords[2] - coords[0]
	h := coords[3] - coords[1]
	if w <= 0 || h <= 0 {
		return width, height
	}
	return w, h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
