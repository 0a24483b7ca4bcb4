package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docvault/ingest/classify"
	"github.com/docvault/ingest/observability"
)

const (
	// RenderScale is the fixed upscale applied when rendering document pages,
	// chosen to improve recognition accuracy over the native resolution.
	RenderScale = 2
	// nativeDPI is the PDF user-space resolution.
	nativeDPI = 72
)

// PDFOptions configures the paginated-document rasterizer.
type PDFOptions struct {
	// Tool selects the external render program. Defaults to pdftoppm.
	Tool RenderTool
	// ToolPath overrides the tool's executable path.
	ToolPath string
	// DPI overrides the render resolution. Defaults to RenderScale times the
	// PDF native 72 DPI.
	DPI int
	// Logger receives per-page skip warnings. Defaults to the nop logger.
	Logger observability.Logger

	// driver overrides the exec-backed driver in tests.
	driver Driver
}

// PDFRasterizer renders each page of a PDF to a PNG at a fixed upscale,
// strictly in page order. pdfcpu supplies validation and the page count; the
// actual rendering is delegated to an external tool because rasterizing PDF
// content streams is out of scope for this module.
type PDFRasterizer struct {
	driver Driver
	dpi    int
	logger observability.Logger
}

// NewPDFRasterizer builds the paginated-document rasterizer.
func NewPDFRasterizer(opts PDFOptions) *PDFRasterizer {
	if opts.Tool == "" {
		opts.Tool = ToolPdftoppm
	}
	driver := opts.driver
	if driver == nil {
		driver = NewDriver(opts.Tool, opts.ToolPath)
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = RenderScale * nativeDPI
	}
	logger := opts.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &PDFRasterizer{driver: driver, dpi: dpi, logger: logger}
}

func (r *PDFRasterizer) Paginated() bool { return true }

// Rasterize renders pages 1..N in order. A page whose render fails is skipped
// and reported in Result.Skipped; the document fails as a whole only when
// nothing could be rendered.
func (r *PDFRasterizer) Rasterize(ctx context.Context, f classify.File) (Result, error) {
	if !r.driver.Available() {
		return Result{}, fmt.Errorf("raster: render tool is not available")
	}

	workDir, err := os.MkdirTemp("", "ingest-raster-")
	if err != nil {
		return Result{}, fmt.Errorf("raster: create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	pdfPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(pdfPath, f.Data, 0600); err != nil {
		return Result{}, fmt.Errorf("raster: stage pdf: %w", err)
	}
	if err := api.ValidateFile(pdfPath, nil); err != nil {
		return Result{}, fmt.Errorf("raster: invalid pdf %q: %w", f.Name, err)
	}
	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return Result{}, fmt.Errorf("raster: page count for %q: %w", f.Name, err)
	}

	res, err := r.renderPages(ctx, pdfPath, pageCount, workDir, f.Name)
	if err != nil {
		return Result{}, err
	}
	if len(res.Pages) == 0 && pageCount > 0 {
		return Result{}, fmt.Errorf("raster: no pages of %q could be rendered", f.Name)
	}
	return res, nil
}

// renderPages walks pages 1..pageCount strictly in order, collecting rendered
// pages and recording skips for pages whose render fails.
func (r *PDFRasterizer) renderPages(ctx context.Context, pdfPath string, pageCount int, workDir, name string) (Result, error) {
	var res Result
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		pageDir := filepath.Join(workDir, fmt.Sprintf("p%d", page))
		if err := os.Mkdir(pageDir, 0700); err != nil {
			return Result{}, fmt.Errorf("raster: create page dir: %w", err)
		}
		outPath, err := r.driver.RenderPage(ctx, pdfPath, page, r.dpi, pageDir)
		if err != nil {
			r.skip(name, &res, &PageRenderError{Page: page, Err: err})
			continue
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			r.skip(name, &res, &PageRenderError{Page: page, Err: err})
			continue
		}
		res.Pages = append(res.Pages, PageImage{Page: page, MediaType: classify.TypePNG, Data: data})
	}
	return res, nil
}

func (r *PDFRasterizer) skip(name string, res *Result, perr *PageRenderError) {
	r.logger.Warn("skipping page that failed to render",
		observability.String("file", name),
		observability.Int("page", perr.Page),
		observability.Error("error", perr))
	res.Skipped = append(res.Skipped, perr.Page)
}
