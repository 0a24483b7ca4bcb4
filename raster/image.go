package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/webp"

	"github.com/docvault/ingest/classify"

	// Register decoders for the formats the classifier accepts so the
	// validation decode below recognizes all of them.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageRasterizer handles single-image inputs: the image is the only page.
// Formats Tesseract reads natively pass through untouched; WEBP is decoded
// and re-encoded to PNG because Leptonica has no WEBP reader in common
// installs.
type ImageRasterizer struct{}

// NewImageRasterizer returns the single-image rasterizer.
func NewImageRasterizer() *ImageRasterizer { return &ImageRasterizer{} }

func (r *ImageRasterizer) Paginated() bool { return false }

// Rasterize validates that the payload decodes as an image and returns it as
// page 1.
func (r *ImageRasterizer) Rasterize(ctx context.Context, f classify.File) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if f.MediaType == classify.TypeWEBP {
		img, err := webp.Decode(bytes.NewReader(f.Data))
		if err != nil {
			return Result{}, fmt.Errorf("raster: decode webp %q: %w", f.Name, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return Result{}, fmt.Errorf("raster: encode %q as png: %w", f.Name, err)
		}
		return Result{Pages: []PageImage{{Page: 1, MediaType: classify.TypePNG, Data: buf.Bytes()}}}, nil
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(f.Data)); err != nil {
		return Result{}, fmt.Errorf("raster: decode %q: %w", f.Name, err)
	}
	return Result{Pages: []PageImage{{Page: 1, MediaType: f.MediaType, Data: f.Data}}}, nil
}
