// Package ingest implements the layout-extraction collaborator: it reads
// a PDF's embedded text layer and emits positioned spans with coordinates
// normalized against the page size. Only the text layer is read; scanned
// pages without one yield no spans.
package ingest
