package tesseract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/docvault/ingest/ocr"
)

// ensureTesseractAvailable checks that the tesseract binary is reachable.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func renderTextPNG(t *testing.T, text string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 240, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	d.DrawString(text)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestOpenRejectsUnknownLanguage(t *testing.T) {
	engine := New()
	_, err := engine.Open(context.Background(), "not-a-language")
	var initErr *ocr.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Open() error = %v, want *ocr.InitError", err)
	}
	if initErr.Language != "not-a-language" {
		t.Fatalf("InitError language = %s", initErr.Language)
	}
}

func TestSessionRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	engine := New()
	session, err := engine.Open(context.Background(), ocr.DefaultLanguage)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer session.Close()

	var fractions []float64
	res, err := session.Recognize(context.Background(), ocr.Input{
		Page:      1,
		Image:     renderTextPNG(t, "Hello Data Room"),
		MediaType: "image/png",
		DPI:       300,
	}, func(f float64) { fractions = append(fractions, f) })
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Page != 1 {
		t.Fatalf("result page = %d, want 1", res.Page)
	}
	if !strings.Contains(strings.ToLower(res.Text), "hello") {
		t.Fatalf("recognized text %q does not contain the rendered word", res.Text)
	}
	if len(fractions) < 2 || fractions[0] != 0 || fractions[len(fractions)-1] != 1 {
		t.Fatalf("progress fractions = %v, want 0 first and 1 last", fractions)
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	ensureTesseractAvailable(t)

	engine := New()
	session, err := engine.Open(context.Background(), ocr.DefaultLanguage)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if _, err := session.Recognize(context.Background(), ocr.Input{Page: 1}, nil); !errors.Is(err, ocr.ErrSessionClosed) {
		t.Fatalf("Recognize() after Close error = %v, want ErrSessionClosed", err)
	}
}

func TestEngineName(t *testing.T) {
	if New().Name() != "tesseract" {
		t.Fatalf("unexpected engine name")
	}
}
