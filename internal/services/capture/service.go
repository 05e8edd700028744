package capture

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/louisbranch/countrycapture/internal/platform/timeouts"
	"github.com/louisbranch/countrycapture/internal/services/capture/modal"
	apperrors "github.com/louisbranch/countrycapture/internal/services/capture/platform/errors"
	"github.com/louisbranch/countrycapture/internal/services/capture/storage"
)

// LevelSummary is one entry of the level index.
type LevelSummary struct {
	ID          string
	CountryName string
	Points      int
	Completions int
}

// Service builds modal view state from the level catalog and receives the
// modal's signals.
type Service struct {
	levels      storage.LevelStore
	completions storage.CompletionStore
	logger      *zap.Logger
	tracer      trace.Tracer
}

// NewService returns a Service reading from store.
func NewService(store storage.Store, logger *zap.Logger, tracer trace.Tracer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("capture")
	}
	return &Service{
		levels:      store,
		completions: store,
		logger:      logger,
		tracer:      tracer,
	}
}

// ViewState loads the display state for levelID. The hint stays absent until
// requested.
func (s *Service) ViewState(ctx context.Context, levelID string) (modal.ViewState, error) {
	ctx, span := s.startSpan(ctx, "capture.view_state", levelID)
	defer span.End()

	level, err := s.getLevel(ctx, levelID)
	if err != nil {
		return modal.ViewState{}, err
	}
	completions, err := s.listCompletions(ctx, level.ID)
	if err != nil {
		return modal.ViewState{}, err
	}

	state := modal.ViewState{
		LevelID:         level.ID,
		CountryName:     level.CountryName,
		CountryTitle:    level.CountryTitle,
		CaptureText:     level.CaptureText,
		Points:          level.Points,
		CountryType:     level.Type,
		CountryCategory: level.Category,
	}
	for _, link := range level.Links {
		state.CaptureLinks = append(state.CaptureLinks, modal.Link{URL: link.URL, Label: link.Label})
	}
	for _, completion := range completions {
		state.CompletedBy = append(state.CompletedBy, completion.TeamName)
	}
	if len(completions) > 0 {
		state.FirstCaptureOwner = completions[0].TeamName
	}
	return state, nil
}

// RequestHint handles the request-hint signal and returns the level hint.
func (s *Service) RequestHint(ctx context.Context, levelID string) (string, error) {
	ctx, span := s.startSpan(ctx, "capture.request_hint", levelID)
	defer span.End()

	level, err := s.getLevel(ctx, levelID)
	if err != nil {
		return "", err
	}
	s.logger.Info("modal signal",
		zap.String("signal", modal.SignalRequestHint.String()),
		zap.String("level_id", level.ID),
		zap.Bool("has_hint", level.Hint != ""),
	)
	return level.Hint, nil
}

// SubmitAnswer handles the submit-answer signal. Answers are not scored here;
// the answer text is never logged.
func (s *Service) SubmitAnswer(ctx context.Context, levelID string, answer string) error {
	_, span := s.startSpan(ctx, "capture.submit_answer", levelID)
	defer span.End()

	if strings.TrimSpace(levelID) == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "level id is required")
	}
	span.SetAttributes(attribute.Int("capture.answer_length", len(answer)))
	s.logger.Info("modal signal",
		zap.String("signal", modal.SignalSubmitAnswer.String()),
		zap.String("level_id", levelID),
		zap.Int("answer_length", len(answer)),
	)
	return nil
}

// Close handles the close signal.
func (s *Service) Close(ctx context.Context, levelID string) error {
	_, span := s.startSpan(ctx, "capture.close", levelID)
	defer span.End()

	s.logger.Debug("modal signal",
		zap.String("signal", modal.SignalClose.String()),
		zap.String("level_id", levelID),
	)
	return nil
}

// SearchLevels lists levels whose country name fuzzily matches query, best
// match first. A blank query lists every level by name.
func (s *Service) SearchLevels(ctx context.Context, query string) ([]LevelSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreQuery)
	defer cancel()

	levels, err := s.levels.ListLevels(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", fmt.Errorf("list levels: %w", err))
	}

	query = strings.TrimSpace(query)
	if query != "" {
		matches := fuzzy.FindFrom(query, levelNames(levels))
		filtered := make([]storage.Level, 0, len(matches))
		for _, match := range matches {
			filtered = append(filtered, levels[match.Index])
		}
		levels = filtered
	} else {
		sort.SliceStable(levels, func(i, j int) bool {
			return levels[i].CountryName < levels[j].CountryName
		})
	}

	out := make([]LevelSummary, 0, len(levels))
	for _, level := range levels {
		completions, err := s.completions.ListCompletions(ctx, level.ID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", fmt.Errorf("list completions: %w", err))
		}
		out = append(out, LevelSummary{
			ID:          level.ID,
			CountryName: level.CountryName,
			Points:      level.Points,
			Completions: len(completions),
		})
	}
	return out, nil
}

func (s *Service) getLevel(ctx context.Context, levelID string) (storage.Level, error) {
	levelID = strings.TrimSpace(levelID)
	if levelID == "" {
		return storage.Level{}, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "level id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreQuery)
	defer cancel()

	level, err := s.levels.GetLevel(ctx, levelID)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Level{}, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", "level not found")
	}
	if err != nil {
		return storage.Level{}, apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", fmt.Errorf("get level: %w", err))
	}
	return level, nil
}

func (s *Service) listCompletions(ctx context.Context, levelID string) ([]storage.Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreQuery)
	defer cancel()

	completions, err := s.completions.ListCompletions(ctx, levelID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", fmt.Errorf("list completions: %w", err))
	}
	return completions, nil
}

func (s *Service) startSpan(ctx context.Context, name, levelID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("capture.level_id", levelID)))
}

// levelNames adapts levels to fuzzy.Source.
type levelNames []storage.Level

func (l levelNames) String(i int) string { return l[i].CountryName }

func (l levelNames) Len() int { return len(l) }
