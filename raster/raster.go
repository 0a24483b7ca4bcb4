// Package raster turns an accepted upload into the ordered sequence of page
// images the OCR stage consumes. Single images pass through (normalized to an
// engine-readable encoding when needed); paginated documents are rendered
// page by page through an external render tool at a fixed upscale.
package raster

import (
	"context"
	"fmt"

	"github.com/docvault/ingest/classify"
)

// PageImage is a single rendered page: its 1-based page number within the
// source document and the encoded bitmap. Sequence order is the document's
// natural page order.
type PageImage struct {
	Page      int
	MediaType string
	Data      []byte
}

// Result is the outcome of rasterizing one file. Pages are in strictly
// increasing page order. Skipped lists page numbers that failed to render and
// were dropped; a non-empty Skipped means the output is incomplete but the
// operation as a whole did not fail.
type Result struct {
	Pages   []PageImage
	Skipped []int
}

// Rasterizer produces page images for one file. Each call re-reads the
// source; results are not cached.
type Rasterizer interface {
	// Paginated reports whether this rasterizer handles multi-page documents.
	Paginated() bool
	Rasterize(ctx context.Context, f classify.File) (Result, error)
}

// PageRenderError reports a single page that could not be rendered. It is
// recovered locally by skipping the page, never surfaced as a failure of the
// whole document.
type PageRenderError struct {
	Page int
	Err  error
}

func (e *PageRenderError) Error() string {
	return fmt.Sprintf("raster: render page %d: %v", e.Page, e.Err)
}

func (e *PageRenderError) Unwrap() error { return e.Err }
