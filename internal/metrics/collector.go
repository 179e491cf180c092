// Package metrics exposes Prometheus series for alert runs and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "job_alert_trigger"

// Collector owns a private registry so several instances can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	runsTotal           *prometheus.CounterVec
	runDuration         *prometheus.HistogramVec
	publishFailures     prometheus.Counter
	storeFailures       prometheus.Counter
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector registers every series. withRuntime adds the Go and process collectors.
func NewCollector(withRuntime bool) *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Webhook calls by kind and outcome class",
		},
		[]string{"kind", "status_class"},
	)
	c.runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of webhook calls",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"kind"},
	)
	c.publishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "run_publish_failures_total",
		Help:      "Run events that could not be published",
	})
	c.storeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "run_store_failures_total",
		Help:      "Run records that could not be saved",
	})
	c.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	c.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	c.registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.publishFailures,
		c.storeFailures,
		c.httpRequestsTotal,
		c.httpRequestDuration,
	)
	if withRuntime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

// Registry is the gatherer served on /metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRun records one finished webhook call.
func (c *Collector) ObserveRun(result models.TriggerResult) {
	c.runsTotal.WithLabelValues(string(result.Kind), string(result.StatusClass)).Inc()
	c.runDuration.WithLabelValues(string(result.Kind)).Observe(result.Duration.Seconds())
}

// PublishFailed counts a dropped run event.
func (c *Collector) PublishFailed() {
	c.publishFailures.Inc()
}

// StoreFailed counts a run record that was not saved.
func (c *Collector) StoreFailed() {
	c.storeFailures.Inc()
}

// Middleware records request counts and latency per route template.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		endpoint := ctx.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		method := ctx.Request.Method
		c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
