// Package api exposes the alert trigger, webhook settings and run history over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhima/job-alert-trigger/internal/api/handlers"
	"github.com/dhima/job-alert-trigger/internal/api/middleware"
	"github.com/dhima/job-alert-trigger/internal/bootstrap"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/webhook"
	"github.com/dhima/job-alert-trigger/pkg/config"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Server orchestrates HTTP routing and dependencies for the API service.
type Server struct {
	config config.App
	logger logging.Logger
	router *gin.Engine
	stack  *bootstrap.Stack
}

// NewServer loads configuration from the environment and wires the API dependencies.
func NewServer(ctx context.Context) (*Server, error) {
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.Environment, cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	stack, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewServerWithStack(stack)
}

// NewServerWithStack builds the router around an already wired stack.
func NewServerWithStack(stack *bootstrap.Stack) (*Server, error) {
	if stack.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config: stack.Config,
		logger: stack.Logger,
		stack:  stack,
	}
	if err := server.setupRouter(); err != nil {
		return nil, err
	}
	return server, nil
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with middleware and routes.
func (s *Server) setupRouter() error {
	router := gin.New()
	zapLogger := logging.Zap(s.logger)

	// Recovery first so panics in later middleware are caught.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(ginzap.GinzapWithConfig(zapLogger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health", "/metrics"},
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", c.GetString(middleware.RequestIDKey))}
		},
	}))
	router.Use(cors.New(s.corsConfig()))
	router.Use(s.stack.Metrics.Middleware())

	router.GET("/health", handlers.NewHealthHandler(s.logger, s.stack.Settings, s.stack.StorageKind).Health)
	router.GET("/metrics", handlers.NewMetricsHandler(s.logger, s.stack.Metrics.Registry()).Metrics)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	alertHandler, err := handlers.NewAlertHandler(s.stack.Runs, s.logger)
	if err != nil {
		return err
	}
	settingsHandler := handlers.NewSettingsHandler(s.stack.Settings, s.stack.Runs, s.logger)
	runHandler := handlers.NewRunHandler(s.stack.Runs, s.logger)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/alerts/trigger", alertHandler.TriggerAlert)

		settings := v1.Group("/settings/webhook")
		{
			settings.GET("", settingsHandler.GetWebhook)
			settings.PUT("", settingsHandler.UpdateWebhook)
			settings.POST("/test", settingsHandler.TestWebhook)
		}

		runs := v1.Group("/runs")
		{
			runs.GET("", runHandler.ListRuns)
			runs.GET("/:id", runHandler.GetRun)
		}
	}

	s.router = router
	return nil
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.config.CORSOrigins) == 1 && s.config.CORSOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.config.CORSOrigins
		cfg.AllowCredentials = true
	}
	return cfg
}

// Serve runs the server until SIGINT or SIGTERM and then releases the stack.
func (s *Server) Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := s.Run(ctx, ":"+s.config.APIPort)
	if closeErr := s.stack.Close(); closeErr != nil {
		s.logger.Error("failed to release resources", zap.Error(closeErr))
	}
	_ = s.logger.Sync()
	return err
}

// Run listens on addr until ctx is done, then drains in-flight requests. A
// trigger in flight may hold its connection for the full trigger timeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.writeTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server",
		zap.String("address", ln.Addr().String()),
		zap.String("environment", s.config.Environment),
		zap.String("storage", s.stack.StorageKind),
		zap.Bool("webhook_configured", s.stack.Settings.WebhookURL() != ""),
	)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("api server failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.writeTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("api server forced to shut down", zap.Error(err))
		return err
	}
	s.logger.Info("api server stopped")
	return nil
}

func (s *Server) writeTimeout() time.Duration {
	timeout := s.config.TriggerTimeout
	if timeout <= 0 {
		timeout = webhook.DefaultTriggerTimeout
	}
	return timeout + 15*time.Second
}
