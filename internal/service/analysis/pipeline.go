package analysis

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"papertrail/internal/config"
	"papertrail/internal/domain/models"
	"papertrail/internal/genai"
)

// Service runs the document analysis pipeline: normalize, rectify or
// extract, then synthesize and detect concurrently, then validate and
// merge. One call is one pipeline instance; nothing is shared between
// concurrent requests.
type Service struct {
	client genai.Client
	cfg    *config.Config
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates an analysis service. now supplies the reference
// instant for date inference; pass time.Now in production.
func NewService(client genai.Client, cfg *config.Config, now func() time.Time, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		now:    now,
		logger: logger,
	}
}

// AnalyzeRequest is one analysis run over an uploaded document.
type AnalyzeRequest struct {
	Kind  models.InputKind
	Pages []models.Page

	// DetectEvents requests the event-detection stage alongside metadata
	// synthesis. When requested, a detection failure fails the whole
	// analysis; metadata success is no partial credit.
	DetectEvents bool
}

// Validate checks the request shape before any model call.
func (r *AnalyzeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Kind, validation.Required, validation.In(models.InputKindImage, models.InputKindOther)),
		validation.Field(&r.Pages, validation.Required, validation.Length(1, config.MaxPagesPerDocument)),
	)
}

// Analyze runs the full pipeline. Any stage failure aborts the analysis
// and surfaces as a single tagged error; no stage substitutes defaults for
// a failed upstream stage. No side effects are committed at any point —
// persistence is the caller's separate step.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*models.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	started := s.now()

	input, err := NormalizeInput(req.Kind, req.Pages)
	if err != nil {
		return nil, err
	}

	// Stage one is a strict prerequisite: synthesis and detection need the
	// rectified image or the extracted text.
	var (
		content models.Page
		text    string
	)
	switch input.Kind {
	case models.InputKindImage:
		rectified, err := s.rectify(ctx, input.Page)
		if err != nil {
			return nil, err
		}
		content = *rectified
	default:
		extracted, err := s.extract(ctx, input.Page)
		if err != nil {
			return nil, err
		}
		content = input.Page
		text = extracted
	}

	// Stage two: synthesis and detection run concurrently over the
	// stage-one output (the rectified image, or the extracted text) and
	// are joined. Either failure fails the request.
	var (
		synthesis  *models.SynthesisResult
		candidates []models.CalendarEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.synthesize(gctx, content, text)
		if err != nil {
			return err
		}
		synthesis = result
		return nil
	})
	if req.DetectEvents {
		g.Go(func() error {
			events, err := s.detectEvents(gctx, content, text, s.now())
			if err != nil {
				return err
			}
			candidates = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := merge(synthesis, candidates, content, text)

	s.logger.Info("analysis complete",
		"kind", input.Kind,
		"pages", len(req.Pages),
		"events_found", len(result.Event.Events),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}
