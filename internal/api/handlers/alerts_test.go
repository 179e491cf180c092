package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlertRouter(t *testing.T, svc *fakeAlertService) *gin.Engine {
	t.Helper()
	h, err := NewAlertHandler(svc, logging.NewNoOpLogger())
	require.NoError(t, err)
	r := gin.New()
	r.POST("/api/v1/alerts/trigger", h.TriggerAlert)
	return r
}

func validAlertBody() map[string]any {
	return map[string]any{
		"keywords":      "Python Developer",
		"location":      "Remote",
		"min_relevance": 35,
		"email":         "ranjan@example.com",
	}
}

func TestTriggerAlert_WhenValid_ThenReturns200WithResultAndReport(t *testing.T) {
	// Arrange
	svc := &fakeAlertService{result: sampleResult(models.RunKindTrigger, models.StatusSuccess, intPtr(200))}
	router := newAlertRouter(t, svc)

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", validAlertBody())

	// Assert
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData[models.TriggerResponse](t, w)
	assert.Equal(t, "run-1", data.RunID)
	assert.Equal(t, models.StatusSuccess, data.Result.StatusClass)
	assert.Contains(t, data.Report, "SUCCESS")
	assert.Contains(t, data.Report, "EXECUTION LOG:")
	require.Len(t, svc.got, 1)
	assert.Equal(t, "Python Developer", svc.got[0].Keywords)
	assert.Equal(t, 35, svc.got[0].MinRelevance)
}

func TestTriggerAlert_WhenWebhookFails_ThenStillReturns200(t *testing.T) {
	// Arrange
	svc := &fakeAlertService{result: sampleResult(models.RunKindTrigger, models.StatusTimeout, nil)}
	router := newAlertRouter(t, svc)

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", validAlertBody())

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData[models.TriggerResponse](t, w)
	assert.Equal(t, models.StatusTimeout, data.Result.StatusClass)
	assert.Contains(t, data.Report, "TIMEOUT")
}

func TestTriggerAlert_WhenSchemaViolated_ThenReturns400WithoutCalling(t *testing.T) {
	cases := map[string]func(map[string]any){
		"missing keywords":   func(b map[string]any) { delete(b, "keywords") },
		"blank location":     func(b map[string]any) { b["location"] = "   " },
		"relevance too low":  func(b map[string]any) { b["min_relevance"] = 10 },
		"relevance too high": func(b map[string]any) { b["min_relevance"] = 95 },
		"relevance fraction": func(b map[string]any) { b["min_relevance"] = 35.5 },
		"bad email":          func(b map[string]any) { b["email"] = "not-an-email" },
		"unknown field":      func(b map[string]any) { b["priority"] = "high" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			// Arrange
			svc := &fakeAlertService{}
			router := newAlertRouter(t, svc)
			body := validAlertBody()
			mutate(body)

			// Act
			w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", body)

			// Assert
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "validation failed", decodeError(t, w)["error"])
			assert.Empty(t, svc.got)
		})
	}
}

func TestTriggerAlert_WhenBodyNotJSON_ThenReturns400(t *testing.T) {
	// Arrange
	router := newAlertRouter(t, &fakeAlertService{})

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", "{not json")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerAlert_WhenBodyEmpty_ThenReturns400(t *testing.T) {
	// Arrange
	router := newAlertRouter(t, &fakeAlertService{})

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", nil)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerAlert_WhenEndpointNotConfigured_ThenReturns409(t *testing.T) {
	// Arrange
	router := newAlertRouter(t, &fakeAlertService{err: models.ErrEndpointNotConfigured})

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", validAlertBody())

	// Assert
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTriggerAlert_WhenServiceRejects_ThenReturns400(t *testing.T) {
	// Arrange
	router := newAlertRouter(t, &fakeAlertService{err: models.NewValidationError("keywords is required")})

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", validAlertBody())

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "keywords is required", decodeError(t, w)["details"])
}

func TestTriggerAlert_WhenServiceFailsUnexpectedly_ThenReturns500(t *testing.T) {
	// Arrange
	router := newAlertRouter(t, &fakeAlertService{err: errors.New("boom")})

	// Act
	w := doJSON(t, router, http.MethodPost, "/api/v1/alerts/trigger", validAlertBody())

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTriggerRequestSchema_WhenBuilt_ThenUsesLimits(t *testing.T) {
	schema := TriggerRequestSchema(testLimits)
	relevance := schema["properties"].(map[string]any)["min_relevance"].(map[string]any)
	assert.Equal(t, 20, relevance["minimum"])
	assert.Equal(t, 80, relevance["maximum"])
}
