package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/dhima/job-alert-trigger/internal/bootstrap"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/internal/scheduler"
	"github.com/dhima/job-alert-trigger/pkg/config"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.Environment, cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Schedule.Enabled() {
		logger.Fatal("SCHEDULE_CRON is required for the scheduler")
	}

	stack, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire dependencies", zap.Error(err))
	}
	defer func() {
		if err := stack.Close(); err != nil {
			logger.Error("failed to release resources", zap.Error(err))
		}
	}()

	profile := models.TriggerRequest{
		Keywords:     cfg.Schedule.Keywords,
		Location:     cfg.Schedule.Location,
		MinRelevance: cfg.Schedule.MinRelevance,
		Email:        cfg.Schedule.Email,
	}
	profile, err = stack.Runs.Validate(profile)
	if err != nil {
		logger.Fatal("invalid scheduled alert profile", zap.Error(err))
	}

	engine, err := scheduler.NewEngine(cfg.Schedule.Cron, cfg.Schedule.Timezone, profile, stack.Runs, stack.Clock, logger,
		scheduler.WithEndpointRefresher(stack.Settings))
	if err != nil {
		logger.Fatal("invalid schedule", zap.Error(err))
	}

	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler stopped", zap.Error(err))
	}
}
