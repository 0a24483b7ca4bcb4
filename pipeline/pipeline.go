// Package pipeline orchestrates document ingestion: classification,
// rasterization, sequential OCR with aggregated progress, and guaranteed
// session teardown. One Run call is one invocation; no state crosses
// invocations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/docvault/ingest/classify"
	"github.com/docvault/ingest/observability"
	"github.com/docvault/ingest/ocr"
	"github.com/docvault/ingest/raster"
)

// State is the pipeline's position in one invocation.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRasterizing
	StateRecognizing
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRasterizing:
		return "rasterizing"
	case StateRecognizing:
		return "recognizing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Config assembles a pipeline. Engine is required; everything else has a
// default.
type Config struct {
	// Engine opens OCR sessions.
	Engine ocr.Engine
	// Classifier gates uploads. Defaults to the document classifier when a
	// paginated rasterizer is configured, the image-only classifier otherwise.
	Classifier *classify.Classifier
	// Images rasterizes single-image inputs. Defaults to raster.NewImageRasterizer.
	Images raster.Rasterizer
	// Documents rasterizes paginated inputs. Nil means the deployment does
	// not support paginated documents.
	Documents raster.Rasterizer
	// InputOptions are applied to every recognition input (DPI, PSM, ...).
	InputOptions []ocr.InputOption
	// OnProgress receives overall percent updates (0–100) for a progress bar.
	OnProgress func(percent int)
	// OnState receives state transitions.
	OnState func(State)

	Logger observability.Logger
	Tracer observability.Tracer
}

// Pipeline turns one uploaded file into extracted text. Safe for sequential
// reuse; concurrent Run calls on the same Pipeline are not supported by
// design (one engine session at a time bounds memory).
type Pipeline struct {
	engine       ocr.Engine
	classifier   *classify.Classifier
	images       raster.Rasterizer
	documents    raster.Rasterizer
	inputOptions []ocr.InputOption
	onProgress   func(int)
	onState      func(State)
	logger       observability.Logger
	tracer       observability.Tracer

	state State
}

// New validates the configuration and builds a pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Engine == nil {
		return nil, errors.New("pipeline: an OCR engine is required")
	}
	if cfg.Images == nil {
		cfg.Images = raster.NewImageRasterizer()
	}
	if cfg.Classifier == nil {
		if cfg.Documents != nil {
			cfg.Classifier = classify.NewDocumentClassifier()
		} else {
			cfg.Classifier = classify.NewImageClassifier()
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observability.NopTracer()
	}
	return &Pipeline{
		engine:       cfg.Engine,
		classifier:   cfg.Classifier,
		images:       cfg.Images,
		documents:    cfg.Documents,
		inputOptions: cfg.InputOptions,
		onProgress:   cfg.OnProgress,
		onState:      cfg.OnState,
		logger:       cfg.Logger,
		tracer:       cfg.Tracer,
	}, nil
}

// State returns the state left behind by the most recent Run.
func (p *Pipeline) State() State { return p.state }

// Run executes one ingestion invocation and returns the extracted text.
// Multi-page results are concatenated in page order with "--- Page N ---"
// markers. On any fatal error the session is closed, accumulated text is
// discarded, and progress is reset; a classification rejection leaves the
// pipeline Idle so the caller can pick another file.
func (p *Pipeline) Run(ctx context.Context, file classify.File, lang ocr.Language) (_ string, err error) {
	id := uuid.NewString()
	log := p.logger.With(
		observability.String("invocation", id),
		observability.String("file", file.Name))

	ctx, span := p.tracer.StartSpan(ctx, "ingest.run")
	defer span.Finish()

	p.report(0)
	// Displayed progress is cleared on every exit, terminal or not.
	defer p.report(0)

	p.setState(StateValidating)
	cls, err := p.classifier.Classify(file)
	if err != nil {
		// Rejection happens before any processing cost and is non-fatal:
		// the pipeline returns to Idle and the user may pick another file.
		p.setState(StateIdle)
		return "", err
	}
	file.MediaType = cls.MediaType
	span.SetTag("kind", cls.Kind.String())
	log.Debug("file accepted",
		observability.String("kind", cls.Kind.String()),
		observability.String("media_type", cls.MediaType))

	var rast raster.Rasterizer
	switch cls.Kind {
	case classify.KindPaginatedDocument:
		if p.documents == nil {
			// This deployment accepts images only; report the image set, not
			// the classifier's, so the message is not self-contradicting.
			p.setState(StateIdle)
			return "", &classify.RejectedError{
				MediaType: cls.MediaType,
				Supported: classify.NewImageClassifier().SupportedTypes(),
			}
		}
		rast = p.documents
		p.setState(StateRasterizing)
	default:
		rast = p.images
	}

	pages, err := rast.Rasterize(ctx, file)
	if err != nil {
		return "", p.fail(log, span, fmt.Errorf("rasterize %q: %w", file.Name, err))
	}
	if len(pages.Skipped) > 0 {
		log.Warn("document rendered with skipped pages",
			observability.Int("pages", len(pages.Pages)),
			observability.Int("skipped", len(pages.Skipped)))
	}
	if len(pages.Pages) == 0 {
		return "", p.fail(log, span, fmt.Errorf("rasterize %q: no pages produced", file.Name))
	}

	p.setState(StateRecognizing)
	lang = lang.Or(ocr.DefaultLanguage)
	session, err := p.engine.Open(ctx, lang)
	if err != nil {
		return "", p.fail(log, span, err)
	}
	// Release-on-all-paths: the session closes exactly once whether the loop
	// completes, a page fails, or the invocation is cancelled mid-flight.
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Error("closing ocr session", observability.Error("error", cerr))
		}
	}()

	agg := NewAggregator(len(pages.Pages))
	multiPage := cls.Kind == classify.KindPaginatedDocument

	var text strings.Builder
	for _, page := range pages.Pages {
		select {
		case <-ctx.Done():
			p.setState(StateCancelled)
			return "", ctx.Err()
		default:
		}

		in := ocr.Input{Page: page.Page, Image: page.Data, MediaType: page.MediaType}
		for _, opt := range p.inputOptions {
			opt(&in)
		}
		res, err := session.Recognize(ctx, in, func(fraction float64) {
			p.report(agg.Update(fraction))
		})
		if err != nil {
			// The whole invocation aborts; text from already-processed pages
			// is discarded.
			return "", p.fail(log, span, err)
		}
		if multiPage {
			fmt.Fprintf(&text, "\n--- Page %d ---\n%s\n", page.Page, res.Text)
		} else {
			text.WriteString(res.Text)
		}
		p.report(agg.PageDone())
	}

	p.setState(StateCompleted)
	log.Info("ingestion completed",
		observability.String("language", string(lang)),
		observability.Int("pages", len(pages.Pages)),
		observability.Int("bytes", text.Len()))
	return text.String(), nil
}

func (p *Pipeline) fail(log observability.Logger, span observability.Span, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Dismissal mid-flight: state resets without a user-facing failure.
		// The deferred session close still runs once the in-flight call has
		// settled.
		p.setState(StateCancelled)
		return err
	}
	p.setState(StateFailed)
	span.SetError(err)
	log.Error("ingestion failed", observability.Error("error", err))
	return err
}

func (p *Pipeline) setState(s State) {
	p.state = s
	if p.onState != nil {
		p.onState(s)
	}
}

func (p *Pipeline) report(percent int) {
	if p.onProgress != nil {
		p.onProgress(percent)
	}
}
