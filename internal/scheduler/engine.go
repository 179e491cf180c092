// Package scheduler fires a fixed alert profile on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/pkg/clock"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlertFirer runs one trigger; *runs.Service satisfies it.
type AlertFirer interface {
	Trigger(ctx context.Context, req models.TriggerRequest) (models.RunRecord, models.TriggerResult, error)
}

// EndpointRefresher reloads the webhook endpoint before each fire;
// *settings.Store satisfies it.
type EndpointRefresher interface {
	Refresh(ctx context.Context) error
}

// Option customizes an Engine.
type Option func(*Engine)

// WithEndpointRefresher re-reads the endpoint before every fire.
func WithEndpointRefresher(r EndpointRefresher) Option {
	return func(e *Engine) { e.refresher = r }
}

// Engine owns the cron loop for the scheduled alert profile.
type Engine struct {
	expr      string
	location  *time.Location
	schedule  cron.Schedule
	request   models.TriggerRequest
	firer     AlertFirer
	refresher EndpointRefresher
	clock     clock.Clock
	logger    logging.Logger
}

// NewEngine validates the expression, timezone and profile up front.
func NewEngine(expr, timezone string, req models.TriggerRequest, firer AlertFirer, clk clock.Clock, logger logging.Logger, opts ...Option) (*Engine, error) {
	if firer == nil {
		return nil, errors.New("scheduler requires an alert firer")
	}
	loc, err := resolveTimezone(timezone)
	if err != nil {
		return nil, err
	}
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	if req.Keywords == "" || req.Location == "" {
		return nil, models.NewValidationError("scheduled alert requires keywords and location")
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	req.Source = models.SourceScheduler
	req.TriggerType = models.TriggerTypeCronJob

	e := &Engine{
		expr:     expr,
		location: loc,
		schedule: schedule,
		request:  req,
		firer:    firer,
		clock:    clk,
		logger:   logger.With(zap.String("component", "scheduler")),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NextFireTime is the next occurrence after the current clock time, in UTC.
func (e *Engine) NextFireTime() time.Time {
	return e.schedule.Next(e.clock.Now().In(e.location)).UTC()
}

// Fire runs the profile once. Failures are logged; a webhook failure is not an error here.
func (e *Engine) Fire(ctx context.Context) {
	if e.refresher != nil {
		if err := e.refresher.Refresh(ctx); err != nil {
			e.logger.Warn("using cached webhook url", zap.Error(err))
		}
	}

	run, result, err := e.firer.Trigger(ctx, e.request)
	if err != nil {
		e.logger.Error("scheduled alert rejected", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("run_id", run.ID),
		zap.String("status_class", string(result.StatusClass)),
		zap.Time("next_fire_at", e.NextFireTime()),
	}
	if result.Succeeded() {
		e.logger.Info("scheduled alert fired", fields...)
	} else {
		e.logger.Warn("scheduled alert did not succeed", fields...)
	}
}

// Run blocks until ctx is cancelled, then waits for an in-flight fire to finish.
// Overlapping fires are skipped.
func (e *Engine) Run(ctx context.Context) error {
	cronLogger := cronLogger{sugar: logging.Zap(e.logger).Sugar()}
	c := cron.New(
		cron.WithLocation(e.location),
		cron.WithParser(cronParser),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := c.AddFunc(e.expr, func() { e.Fire(ctx) }); err != nil {
		return err
	}

	e.logger.Info("scheduler started",
		zap.String("cron", e.expr),
		zap.String("timezone", e.location.String()),
		zap.String("keywords", e.request.Keywords),
		zap.Time("next_fire_at", e.NextFireTime()),
	)
	c.Start()

	<-ctx.Done()
	e.logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return ctx.Err()
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
