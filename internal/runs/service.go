// Package runs fires alert triggers and connection tests and keeps their history.
package runs

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	platformEvents "github.com/dhima/job-alert-trigger/platform/events"
	"github.com/dhima/job-alert-trigger/pkg/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Limits bounds the accepted minimum relevance percentage.
type Limits struct {
	MinRelevanceFloor   int
	MinRelevanceCeiling int
}

// Config holds the service's tunables.
type Config struct {
	Limits         Limits
	TriggerTimeout time.Duration
	TestTimeout    time.Duration
}

// Service validates requests, calls the webhook, and records every outcome.
// Recording is best effort: the returned result never depends on it.
type Service struct {
	cfg       Config
	client    Triggerer
	endpoints EndpointSource
	store     RunStore
	publisher EventPublisher
	recorder  Recorder
	clock     clock.Clock
	logger    logging.Logger
}

// NewService creates a run service. publisher and recorder may be nil.
func NewService(cfg Config, client Triggerer, endpoints EndpointSource, store RunStore, publisher EventPublisher, recorder Recorder, clk clock.Clock, logger logging.Logger) *Service {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if publisher == nil {
		publisher = platformEvents.NoopPublisher{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{
		cfg:       cfg,
		client:    client,
		endpoints: endpoints,
		store:     store,
		publisher: publisher,
		recorder:  recorder,
		clock:     clk,
		logger:    logger.With(zap.String("component", "run_service")),
	}
}

// Limits returns the configured relevance range.
func (s *Service) Limits() Limits {
	return s.cfg.Limits
}

// Validate trims and checks a trigger request.
func (s *Service) Validate(req models.TriggerRequest) (models.TriggerRequest, error) {
	req.Keywords = strings.TrimSpace(req.Keywords)
	req.Location = strings.TrimSpace(req.Location)
	req.Email = strings.TrimSpace(req.Email)

	if req.Keywords == "" {
		return req, models.NewValidationError("keywords is required")
	}
	if req.Location == "" {
		return req, models.NewValidationError("location is required")
	}
	floor, ceiling := s.cfg.Limits.MinRelevanceFloor, s.cfg.Limits.MinRelevanceCeiling
	if req.MinRelevance < floor || req.MinRelevance > ceiling {
		return req, models.NewValidationError("min_relevance must be between %d and %d", floor, ceiling)
	}
	return req.WithDefaults(), nil
}

// Trigger fires the alert workflow with the saved endpoint. The error is
// non-nil only for invalid input or a missing endpoint; webhook failures are
// reported through the result.
func (s *Service) Trigger(ctx context.Context, req models.TriggerRequest) (models.RunRecord, models.TriggerResult, error) {
	req, err := s.Validate(req)
	if err != nil {
		return models.RunRecord{}, models.TriggerResult{}, err
	}
	endpoint := s.endpoints.WebhookURL()
	if endpoint == "" {
		return models.RunRecord{}, models.TriggerResult{}, models.ErrEndpointNotConfigured
	}

	result := s.client.Trigger(ctx, endpoint, req, s.cfg.TriggerTimeout)
	run := s.record(ctx, endpoint, req, result)
	return run, result, nil
}

// TestConnection probes override, or the saved endpoint when override is empty.
func (s *Service) TestConnection(ctx context.Context, override string) (models.RunRecord, models.TriggerResult, error) {
	endpoint := strings.TrimSpace(override)
	if endpoint == "" {
		endpoint = s.endpoints.WebhookURL()
	}
	if endpoint == "" {
		return models.RunRecord{}, models.TriggerResult{}, models.ErrEndpointNotConfigured
	}

	result := s.client.TestConnection(ctx, endpoint, s.cfg.TestTimeout)
	run := s.record(ctx, endpoint, models.TriggerRequest{Source: models.SourceConnTest}, result)
	return run, result, nil
}

// ListRuns returns run history with pagination metadata.
func (s *Service) ListRuns(ctx context.Context, query models.ListRunsQuery) (models.RunListResponse, error) {
	query = query.Normalize()
	items, total, err := s.store.ListRuns(ctx, query)
	if err != nil {
		s.logger.Error("failed to list runs", zap.Error(err))
		return models.RunListResponse{}, fmt.Errorf("list runs: %w", err)
	}
	return models.RunListResponse{
		Runs:       items,
		Pagination: models.NewPagination(query, total),
	}, nil
}

// GetRun returns one run; storage.ErrRunNotFound passes through wrapped.
func (s *Service) GetRun(ctx context.Context, id string) (*models.RunRecord, error) {
	run, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

func (s *Service) record(ctx context.Context, endpoint string, req models.TriggerRequest, result models.TriggerResult) models.RunRecord {
	run := models.RunRecord{
		ID:           uuid.New().String(),
		Kind:         result.Kind,
		StatusClass:  result.StatusClass,
		HTTPStatus:   result.HTTPStatus,
		Endpoint:     endpoint,
		Keywords:     req.Keywords,
		Location:     req.Location,
		MinRelevance: req.MinRelevance,
		Email:        req.Email,
		Source:       req.Source,
		LogLines:     result.LogLines,
		StartedAt:    result.StartedAt,
		DurationMS:   result.Duration.Milliseconds(),
		CreatedAt:    s.clock.Now(),
	}

	s.recorder.ObserveRun(result)

	// The caller's context may already be past its deadline after a timeout.
	bg := context.WithoutCancel(ctx)

	if err := s.store.CreateRun(bg, &run); err != nil {
		s.recorder.StoreFailed()
		s.logger.Error("failed to store run",
			zap.String("run_id", run.ID),
			zap.Error(err))
	}

	if err := s.publisher.Publish(bg, toEvent(run)); err != nil {
		s.recorder.PublishFailed()
		s.logger.Warn("failed to publish run event",
			zap.String("run_id", run.ID),
			zap.Error(err))
	}

	s.logger.Info("run recorded",
		zap.String("run_id", run.ID),
		zap.String("kind", string(run.Kind)),
		zap.String("status_class", string(run.StatusClass)),
		zap.String("source", run.Source),
		logging.Email("email", run.Email),
		zap.Int64("duration_ms", run.DurationMS))
	return run
}

func toEvent(run models.RunRecord) platformEvents.RunEvent {
	host := ""
	if u, err := url.Parse(run.Endpoint); err == nil {
		host = u.Host
	}
	return platformEvents.RunEvent{
		RunID:        run.ID,
		Kind:         string(run.Kind),
		StatusClass:  string(run.StatusClass),
		HTTPStatus:   run.HTTPStatus,
		EndpointHost: host,
		Keywords:     run.Keywords,
		Location:     run.Location,
		MinRelevance: run.MinRelevance,
		Source:       run.Source,
		StartedAt:    run.StartedAt,
		DurationMS:   run.DurationMS,
	}
}

type noopRecorder struct{}

func (noopRecorder) ObserveRun(models.TriggerResult) {}
func (noopRecorder) PublishFailed()                  {}
func (noopRecorder) StoreFailed()                    {}
