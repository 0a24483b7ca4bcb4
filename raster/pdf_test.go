package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/docvault/ingest/observability"
)

// fakeDriver renders scripted pages by dropping a marker file into the
// per-page scratch directory.
type fakeDriver struct {
	failPages map[int]bool
	rendered  []int
}

func (d *fakeDriver) Available() bool { return true }

func (d *fakeDriver) RenderPage(_ context.Context, _ string, page, dpi int, outDir string) (string, error) {
	d.rendered = append(d.rendered, page)
	if d.failPages[page] {
		return "", fmt.Errorf("no draw surface for page %d", page)
	}
	path := filepath.Join(outDir, fmt.Sprintf("page-%d.png", page))
	if err := os.WriteFile(path, []byte(fmt.Sprintf("png:%d@%d", page, dpi)), 0600); err != nil {
		return "", err
	}
	return path, nil
}

func newTestRasterizer(d Driver) *PDFRasterizer {
	return NewPDFRasterizer(PDFOptions{Logger: observability.NopLogger{}, driver: d})
}

func TestRenderPagesInOrder(t *testing.T) {
	driver := &fakeDriver{}
	r := newTestRasterizer(driver)

	res, err := r.renderPages(context.Background(), "in.pdf", 4, t.TempDir(), "in.pdf")
	if err != nil {
		t.Fatalf("renderPages() error = %v", err)
	}
	if len(res.Pages) != 4 {
		t.Fatalf("pages = %d, want 4", len(res.Pages))
	}
	for i, page := range res.Pages {
		if page.Page != i+1 {
			t.Fatalf("page %d has number %d, want strictly increasing from 1", i, page.Page)
		}
		if len(page.Data) == 0 {
			t.Fatalf("page %d has empty payload", page.Page)
		}
	}
	if len(driver.rendered) != 4 || driver.rendered[0] != 1 || driver.rendered[3] != 4 {
		t.Fatalf("render order = %v", driver.rendered)
	}
}

func TestRenderPagesSkipsFailedPage(t *testing.T) {
	driver := &fakeDriver{failPages: map[int]bool{2: true}}
	r := newTestRasterizer(driver)

	res, err := r.renderPages(context.Background(), "in.pdf", 3, t.TempDir(), "in.pdf")
	if err != nil {
		t.Fatalf("renderPages() error = %v", err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("pages = %d, want 2 after skipping page 2", len(res.Pages))
	}
	if res.Pages[0].Page != 1 || res.Pages[1].Page != 3 {
		t.Fatalf("remaining pages = %d,%d, want 1,3", res.Pages[0].Page, res.Pages[1].Page)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != 2 {
		t.Fatalf("skipped = %v, want [2]", res.Skipped)
	}
}

func TestRenderPagesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newTestRasterizer(&fakeDriver{})
	if _, err := r.renderPages(ctx, "in.pdf", 3, t.TempDir(), "in.pdf"); err == nil {
		t.Fatalf("renderPages() ignored cancelled context")
	}
}

func TestRasterizeDefaults(t *testing.T) {
	r := NewPDFRasterizer(PDFOptions{})
	if !r.Paginated() {
		t.Fatalf("pdf rasterizer does not claim pagination")
	}
	if r.dpi != RenderScale*72 {
		t.Fatalf("default dpi = %d, want %d", r.dpi, RenderScale*72)
	}
}

func TestSinglePNG(t *testing.T) {
	dir := t.TempDir()
	if _, err := singlePNG(dir); err == nil {
		t.Fatalf("singlePNG() on empty dir did not fail")
	}
	want := filepath.Join(dir, "page-01.png")
	if err := os.WriteFile(want, []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := singlePNG(dir)
	if err != nil {
		t.Fatalf("singlePNG() error = %v", err)
	}
	if got != want {
		t.Fatalf("singlePNG() = %q, want %q", got, want)
	}
	if err := os.WriteFile(filepath.Join(dir, "page-02.png"), []byte("y"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := singlePNG(dir); err == nil {
		t.Fatalf("singlePNG() with two files did not fail")
	}
}

func TestPageRenderErrorMessage(t *testing.T) {
	err := &PageRenderError{Page: 7, Err: fmt.Errorf("boom")}
	if err.Error() != "raster: render page 7: boom" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err.Unwrap() == nil {
		t.Fatalf("Unwrap() = nil")
	}
}
