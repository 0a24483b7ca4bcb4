// Package tesseract implements ocr.Engine over the gosseract client. It
// requires the Tesseract native library and the traineddata file for each
// selectable language to be installed on the host.
package tesseract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/docvault/ingest/ocr"
)

// Engine opens Tesseract-backed recognition sessions.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract-backed OCR engine.
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Open creates a session bound to the requested language model. The language
// must be a catalog member; a code Tesseract cannot load surfaces as
// *ocr.InitError.
func (e *Engine) Open(_ context.Context, lang ocr.Language) (ocr.Session, error) {
	if !lang.Valid() {
		return nil, &ocr.InitError{Language: lang, Err: fmt.Errorf("language not in catalog")}
	}
	c := e.clientFactory()
	if err := c.SetLanguage(string(lang)); err != nil {
		c.Close()
		return nil, &ocr.InitError{Language: lang, Err: err}
	}
	return &session{client: c}, nil
}

// session wraps one gosseract client. All methods are serialized; the
// pipeline processes pages sequentially and Close may race only with itself.
type session struct {
	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

func (s *session) Recognize(ctx context.Context, in ocr.Input, progress ocr.ProgressFunc) (ocr.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ocr.Result{}, ocr.ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}
	if progress != nil {
		progress(0)
	}
	if err := s.client.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, &ocr.RecognitionError{Page: in.Page, Err: fmt.Errorf("set image: %w", err)}
	}
	if in.DPI > 0 {
		if err := s.client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, &ocr.RecognitionError{Page: in.Page, Err: fmt.Errorf("set dpi: %w", err)}
		}
	}
	for k, v := range in.Metadata {
		if err := s.client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return ocr.Result{}, &ocr.RecognitionError{Page: in.Page, Err: fmt.Errorf("set variable %s: %w", k, err)}
		}
	}
	// gosseract exposes no mid-image callbacks, so progress for one image is
	// coarse: 0.0 at start, 1.0 on completion.
	text, err := s.client.Text()
	if err != nil {
		return ocr.Result{}, &ocr.RecognitionError{Page: in.Page, Err: err}
	}
	if progress != nil {
		progress(1)
	}
	return ocr.Result{Page: in.Page, Text: strings.TrimSpace(text)}, nil
}

// Close releases the native client. Subsequent calls are no-ops.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}
