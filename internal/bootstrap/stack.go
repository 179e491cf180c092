// Package bootstrap builds the service graph shared by the API and scheduler binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/metrics"
	"github.com/dhima/job-alert-trigger/internal/runs"
	"github.com/dhima/job-alert-trigger/internal/settings"
	"github.com/dhima/job-alert-trigger/internal/storage"
	"github.com/dhima/job-alert-trigger/internal/webhook"
	platformEvents "github.com/dhima/job-alert-trigger/platform/events"
	"github.com/dhima/job-alert-trigger/pkg/clock"
	"github.com/dhima/job-alert-trigger/pkg/config"
	"go.uber.org/zap"
)

// Storage backend names reported by /health.
const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type publisher interface {
	runs.EventPublisher
	Close() error
}

// Stack is the wired dependency graph.
type Stack struct {
	Config      config.App
	Logger      logging.Logger
	Clock       clock.Clock
	DB          *sql.DB
	StorageKind string
	Settings    *settings.Store
	Client      *webhook.Client
	Runs        *runs.Service
	Metrics     *metrics.Collector

	publisher publisher
}

// Option customizes New.
type Option func(*options)

type options struct {
	clock      clock.Clock
	httpClient webhook.HTTPDoer
	db         *sql.DB
}

// WithClock overrides the real clock.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

// WithHTTPClient overrides the outbound webhook HTTP client.
func WithHTTPClient(d webhook.HTTPDoer) Option {
	return func(o *options) { o.httpClient = d }
}

// WithDB supplies an already opened database instead of dialing DATABASE_URL.
func WithDB(db *sql.DB) Option {
	return func(o *options) { o.db = db }
}

// New wires storage, events, metrics, settings, the webhook client and the run service.
// Without DATABASE_URL run history lives in memory; without KAFKA_BROKERS events are dropped.
func New(ctx context.Context, cfg config.App, logger logging.Logger, opts ...Option) (*Stack, error) {
	if cfg.MinRelevanceFloor > cfg.MinRelevanceCeiling {
		return nil, fmt.Errorf("MIN_RELEVANCE_FLOOR (%d) exceeds MIN_RELEVANCE_CEILING (%d)",
			cfg.MinRelevanceFloor, cfg.MinRelevanceCeiling)
	}

	o := options{clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Stack{
		Config:  cfg,
		Logger:  logger,
		Clock:   o.clock,
		Metrics: metrics.NewCollector(true),
	}

	var (
		runStore  runs.RunStore
		persister settings.Persister
	)
	db := o.db
	if db == nil && cfg.DatabaseURL != "" {
		opened, err := storage.OpenMySQL(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db = opened
	}
	if db != nil {
		client := storage.NewMySQLClient(db)
		if err := client.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		s.DB = db
		s.StorageKind = StorageMySQL
		runStore = client
		persister = client
	} else {
		logger.Warn("DATABASE_URL not set; run history and webhook settings are kept in memory")
		s.StorageKind = StorageMemory
		runStore = storage.NewMemoryRunStore(storage.DefaultMemoryCapacity)
	}

	if len(cfg.KafkaBrokers) > 0 {
		s.publisher = platformEvents.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logging.Zap(logger))
		logger.Info("publishing run events",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	} else {
		s.publisher = platformEvents.NoopPublisher{}
	}

	s.Settings = settings.NewStore(cfg.WebhookURL, persister, s.Clock, logger)
	if err := s.Settings.Load(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	clientOpts := []webhook.Option{webhook.WithClock(s.Clock), webhook.WithLogger(logger)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, webhook.WithHTTPClient(o.httpClient))
	}
	s.Client = webhook.NewClient(clientOpts...)

	s.Runs = runs.NewService(
		runs.Config{
			Limits: runs.Limits{
				MinRelevanceFloor:   cfg.MinRelevanceFloor,
				MinRelevanceCeiling: cfg.MinRelevanceCeiling,
			},
			TriggerTimeout: cfg.TriggerTimeout,
			TestTimeout:    cfg.TestTimeout,
		},
		s.Client,
		s.Settings,
		runStore,
		s.publisher,
		s.Metrics,
		s.Clock,
		logger,
	)
	return s, nil
}

// Close releases the publisher and database.
func (s *Stack) Close() error {
	var errs []error
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
