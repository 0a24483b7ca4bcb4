package ocr

import (
	"context"
	"fmt"
)

// Input encapsulates a single page image submitted for recognition.
type Input struct {
	// Page is the 1-based page number within the source document.
	Page int
	// Image is the encoded image payload.
	Image []byte
	// MediaType declares the image encoding (e.g. image/png).
	MediaType string
	// DPI carries the effective dots-per-inch for the image. Engines use it
	// for scaling and layout heuristics; zero means unknown.
	DPI int
	// Metadata passes engine-specific knobs (e.g. Tesseract's "psm") without
	// hard-coding them into the API surface.
	Metadata map[string]string
}

// Result captures recognition output for a single input image.
type Result struct {
	// Page mirrors the Input.Page that produced this result.
	Page int
	// Text is the extracted text, whitespace-trimmed.
	Text string
}

// ProgressFunc receives fractional progress (0.0–1.0) for the image currently
// being recognized. Callbacks arrive in non-decreasing order.
type ProgressFunc func(fraction float64)

// Session is a scoped handle to a loaded recognition model. Images are
// processed strictly sequentially within one session. Close is mandatory on
// every exit path; a leaked session is a defect.
type Session interface {
	// Recognize runs OCR on one image, reporting fractional progress through
	// progress (which may be nil). The caller blocks until this image is done.
	Recognize(ctx context.Context, in Input, progress ProgressFunc) (Result, error)
	// Close releases the engine resources. It is safe to call more than once;
	// only the first call has effect.
	Close() error
}

// Engine opens recognition sessions for a selected language.
type Engine interface {
	Name() string
	// Open loads the requested language model. It fails with *InitError when
	// the model cannot be loaded.
	Open(ctx context.Context, lang Language) (Session, error)
}

// InitError reports a language model that failed to load. Fatal to the
// invocation.
type InitError struct {
	Language Language
	Err      error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("ocr: open session for language %q: %v", e.Language, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// RecognitionError reports a failure while recognizing a page. Fatal to the
// invocation; accumulated text is discarded by the pipeline.
type RecognitionError struct {
	Page int
	Err  error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("ocr: recognize page %d: %v", e.Page, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// ErrSessionClosed is returned by Recognize after Close.
var ErrSessionClosed = fmt.Errorf("ocr: session is closed")
