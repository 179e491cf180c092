package handlers

import (
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves Prometheus metrics.
type MetricsHandler struct {
	logger   logging.Logger
	gatherer prometheus.Gatherer
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(logger logging.Logger, gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{logger: logger, gatherer: gatherer}
}

// Metrics godoc
// @Summary Prometheus metrics
// @Description Run counts by kind and outcome class, run latency, and HTTP request metrics in Prometheus text format
// @Tags System
// @Produce plain
// @Success 200 {string} string "Prometheus exposition"
// @Router /metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}).ServeHTTP(c.Writer, c.Request)
}
