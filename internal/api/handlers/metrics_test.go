package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/metrics"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_WhenRunsObserved_ThenExposesPrometheusText(t *testing.T) {
	// Arrange
	collector := metrics.NewCollector(false)
	collector.ObserveRun(sampleResult(models.RunKindTrigger, models.StatusSuccess, intPtr(200)))
	handler := NewMetricsHandler(logging.NewNoOpLogger(), collector.Registry())
	router := gin.New()
	router.GET("/metrics", handler.Metrics)

	// Act
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `job_alert_trigger_runs_total{kind="trigger",status_class="success"} 1`)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
