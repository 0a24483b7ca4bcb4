// Package classify gates uploaded files before any rasterization or OCR cost
// is incurred. A file is checked against a fixed media-type allow-list and
// tagged as a single image or a paginated document; everything else is
// rejected with a message listing the supported formats.
package classify

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind tags an accepted file with the processing path it takes.
type Kind int

const (
	// KindUnsupported marks a file outside the allow-list.
	KindUnsupported Kind = iota
	// KindSingleImage marks a bitmap image; the file itself is the only page.
	KindSingleImage
	// KindPaginatedDocument marks a multi-page document that must be
	// rasterized page by page before recognition.
	KindPaginatedDocument
)

// String returns the tag name.
func (k Kind) String() string {
	switch k {
	case KindSingleImage:
		return "single-image"
	case KindPaginatedDocument:
		return "paginated-document"
	default:
		return "unsupported"
	}
}

// File is an uploaded file: its payload, declared media type, and display
// name. It is immutable for the duration of one pipeline invocation.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// BaseName returns the display name without its extension, used to default a
// document name from the upload.
func (f File) BaseName() string {
	base := filepath.Base(f.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Result carries the classification outcome for an accepted file.
type Result struct {
	Kind Kind
	// MediaType is the normalized media type the decision was made on
	// (declared type when present, sniffed from content otherwise).
	MediaType string
}

// RejectedError reports a file whose media type is outside the allow-list.
// It is non-fatal: the caller may pick another file.
type RejectedError struct {
	MediaType string
	Supported []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("unsupported file type %q: supported formats are %s",
		e.MediaType, strings.Join(e.Supported, ", "))
}

// Media types accepted for OCR input.
const (
	TypePNG  = "image/png"
	TypeJPEG = "image/jpeg"
	TypeWEBP = "image/webp"
	TypeBMP  = "image/bmp"
	TypeTIFF = "image/tiff"
	TypeGIF  = "image/gif"
	TypePDF  = "application/pdf"
)

// Classifier checks declared media types against a supported-type set. The
// check is pure: no decoding or rendering happens here.
type Classifier struct {
	kinds      map[string]Kind
	extensions map[string]struct{}
}

// NewImageClassifier accepts bitmap image formats only. Deployments without a
// paginated-document rasterizer use this variant.
func NewImageClassifier() *Classifier {
	c := &Classifier{
		kinds:      make(map[string]Kind),
		extensions: make(map[string]struct{}),
	}
	for _, t := range []string{TypePNG, TypeJPEG, TypeWEBP, TypeBMP, TypeTIFF, TypeGIF} {
		c.kinds[t] = KindSingleImage
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tiff", ".tif", ".gif"} {
		c.extensions[ext] = struct{}{}
	}
	return c
}

// NewDocumentClassifier accepts bitmap images plus PDF.
func NewDocumentClassifier() *Classifier {
	c := NewImageClassifier()
	c.kinds[TypePDF] = KindPaginatedDocument
	c.extensions[".pdf"] = struct{}{}
	return c
}

// Classify validates the file's media type against the supported-type set.
// A file with no declared type is sniffed from its content. Returns a
// *RejectedError for anything outside the set.
func (c *Classifier) Classify(f File) (Result, error) {
	mt := normalizeMediaType(f.MediaType)
	if mt == "" {
		mt = mimetype.Detect(f.Data).String()
		// mimetype appends parameters to some types (e.g. text/plain;
		// charset=utf-8); the allow-list carries bare types only.
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
	}
	kind, ok := c.kinds[mt]
	if !ok {
		return Result{}, &RejectedError{MediaType: mt, Supported: c.SupportedTypes()}
	}
	return Result{Kind: kind, MediaType: mt}, nil
}

// SupportedTypes returns the allow-list in stable order.
func (c *Classifier) SupportedTypes() []string {
	types := make([]string, 0, len(c.kinds))
	for t := range c.kinds {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Extensions returns the file-picker extension allow-list mirroring the
// media-type set, e.g. ".png,.jpg,.jpeg,.pdf".
func (c *Classifier) Extensions() string {
	exts := make([]string, 0, len(c.extensions))
	for e := range c.extensions {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return strings.Join(exts, ",")
}

func normalizeMediaType(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	// Browsers report JPEG uploads as image/jpg often enough that both
	// spellings have to be accepted.
	if mt == "image/jpg" {
		return TypeJPEG
	}
	return mt
}
