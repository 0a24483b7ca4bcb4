package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/docvault/ingest/classify"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestImageRasterizerPassThrough(t *testing.T) {
	r := NewImageRasterizer()
	if r.Paginated() {
		t.Fatalf("image rasterizer claims pagination")
	}

	data := encodePNG(t)
	res, err := r.Rasterize(context.Background(), classify.File{
		Name:      "scan.png",
		MediaType: classify.TypePNG,
		Data:      data,
	})
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(res.Pages))
	}
	page := res.Pages[0]
	if page.Page != 1 {
		t.Fatalf("page number = %d, want 1", page.Page)
	}
	if !bytes.Equal(page.Data, data) {
		t.Fatalf("pass-through modified the payload")
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skips: %v", res.Skipped)
	}
}

func TestImageRasterizerRejectsGarbage(t *testing.T) {
	r := NewImageRasterizer()
	_, err := r.Rasterize(context.Background(), classify.File{
		Name:      "scan.png",
		MediaType: classify.TypePNG,
		Data:      []byte("not an image at all"),
	})
	if err == nil {
		t.Fatalf("Rasterize() accepted undecodable data")
	}
}

func TestImageRasterizerHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewImageRasterizer()
	if _, err := r.Rasterize(ctx, classify.File{Data: encodePNG(t)}); err == nil {
		t.Fatalf("Rasterize() ignored cancelled context")
	}
}
