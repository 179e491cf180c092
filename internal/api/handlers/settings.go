package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dhima/job-alert-trigger/internal/api/response"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/internal/settings"
	"github.com/dhima/job-alert-trigger/internal/webhook"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsStore reads and saves the webhook endpoint.
type SettingsStore interface {
	Settings() models.WebhookSettings
	SetWebhookURL(ctx context.Context, raw string) (models.WebhookSettings, error)
}

// ConnectionTester probes a webhook endpoint.
type ConnectionTester interface {
	TestConnection(ctx context.Context, override string) (models.RunRecord, models.TriggerResult, error)
}

// SettingsHandler handles webhook configuration requests.
type SettingsHandler struct {
	store  SettingsStore
	tester ConnectionTester
	logger logging.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(store SettingsStore, tester ConnectionTester, logger logging.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		tester: tester,
		logger: logger.With(zap.String("handler", "settings")),
	}
}

// GetWebhook godoc
// @Summary Get the webhook endpoint
// @Description Returns the workflow webhook URL used for triggers. An empty url means nothing is configured.
// @Tags Settings
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=models.WebhookSettings}
// @Router /api/v1/settings/webhook [get]
func (h *SettingsHandler) GetWebhook(c *gin.Context) {
	response.OK(c, h.store.Settings())
}

// UpdateWebhook godoc
// @Summary Save the webhook endpoint
// @Description Replaces the workflow webhook URL. Subsequent triggers use the new value.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body models.UpdateWebhookRequest true "Webhook URL"
// @Success 200 {object} response.SuccessResponse{data=models.WebhookSettings}
// @Failure 400 {object} response.ErrorResponse "Invalid URL"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/settings/webhook [put]
func (h *SettingsHandler) UpdateWebhook(c *gin.Context) {
	var req models.UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, response.BindingErrors(err))
		return
	}

	saved, err := h.store.SetWebhookURL(c.Request.Context(), req.URL)
	if handleServiceError(c, h.logger, err, "update webhook") {
		return
	}

	response.Success(c, http.StatusOK, saved, "webhook URL saved")
}

// TestWebhook godoc
// @Summary Test the webhook connection
// @Description Sends a minimal probe payload to the saved webhook URL, or to the url given in the body, and returns the classified outcome.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body models.TestConnectionRequest false "Optional URL to probe instead of the saved one"
// @Success 200 {object} response.SuccessResponse{data=models.TriggerResponse}
// @Failure 400 {object} response.ErrorResponse "Invalid URL"
// @Failure 409 {object} response.ErrorResponse "Webhook not configured"
// @Router /api/v1/settings/webhook/test [post]
func (h *SettingsHandler) TestWebhook(c *gin.Context) {
	// An empty body, chunked or not, means test the saved endpoint.
	var req models.TestConnectionRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(c, "invalid request body", err.Error())
			return
		}
	}
	if req.URL != "" {
		normalized, err := settings.ValidateURL(req.URL)
		if handleServiceError(c, h.logger, err, "test webhook") {
			return
		}
		req.URL = normalized
	}

	run, outcome, err := h.tester.TestConnection(c.Request.Context(), req.URL)
	if handleServiceError(c, h.logger, err, "test webhook") {
		return
	}

	response.OK(c, models.TriggerResponse{
		RunID:  run.ID,
		Result: outcome,
		Report: webhook.Report(outcome),
	})
}
