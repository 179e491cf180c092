package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhima/job-alert-trigger/internal/api/response"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/internal/runs"
	"github.com/dhima/job-alert-trigger/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// AlertService fires alert triggers.
type AlertService interface {
	Limits() runs.Limits
	Trigger(ctx context.Context, req models.TriggerRequest) (models.RunRecord, models.TriggerResult, error)
}

// AlertHandler handles manual job alert triggers.
type AlertHandler struct {
	service AlertService
	schema  *gojsonschema.Schema
	logger  logging.Logger
}

// NewAlertHandler compiles the request schema for the service's relevance limits.
func NewAlertHandler(service AlertService, logger logging.Logger) (*AlertHandler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(TriggerRequestSchema(service.Limits())))
	if err != nil {
		return nil, fmt.Errorf("compile trigger request schema: %w", err)
	}
	return &AlertHandler{
		service: service,
		schema:  schema,
		logger:  logger.With(zap.String("handler", "alert")),
	}, nil
}

// TriggerRequestSchema is the JSON schema for POST /alerts/trigger.
func TriggerRequestSchema(limits runs.Limits) map[string]any {
	nonBlank := map[string]any{"type": "string", "minLength": 1, "maxLength": 255, "pattern": `\S`}
	return map[string]any{
		"type":     "object",
		"required": []any{"keywords", "location", "min_relevance", "email"},
		"properties": map[string]any{
			"keywords": nonBlank,
			"location": nonBlank,
			"min_relevance": map[string]any{
				"type":    "integer",
				"minimum": limits.MinRelevanceFloor,
				"maximum": limits.MinRelevanceCeiling,
			},
			"email":        map[string]any{"type": "string", "format": "email"},
			"source":       map[string]any{"type": "string", "maxLength": 64},
			"trigger_type": map[string]any{"type": "string", "maxLength": 64},
		},
		"additionalProperties": false,
	}
}

// TriggerAlert godoc
// @Summary Trigger the job alert workflow
// @Description Validates the alert parameters, posts them to the configured workflow webhook and returns the classified outcome with a plain-text report. Webhook failures still return 200; inspect result.status_class.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body models.TriggerRequest true "Alert parameters"
// @Success 200 {object} response.SuccessResponse{data=models.TriggerResponse}
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 409 {object} response.ErrorResponse "Webhook not configured"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/alerts/trigger [post]
func (h *AlertHandler) TriggerAlert(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		response.BadRequest(c, "invalid request body", "request body is required")
		return
	}

	result, err := h.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		h.logger.Warn("unparseable trigger request",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}
	if !result.Valid() {
		problems := response.SchemaErrors(result)
		h.logger.Warn("trigger request failed schema validation",
			zap.Int("error_count", len(problems)),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.ValidationErrors(c, problems)
		return
	}

	var req models.TriggerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}
	req.Source = strings.TrimSpace(req.Source)
	req.TriggerType = strings.TrimSpace(req.TriggerType)

	run, outcome, err := h.service.Trigger(c.Request.Context(), req)
	if handleServiceError(c, h.logger, err, "trigger alert") {
		return
	}

	h.logger.Info("alert triggered",
		zap.String("run_id", run.ID),
		zap.String("status_class", string(outcome.StatusClass)),
		zap.String("request_id", response.GetRequestID(c)),
	)

	response.OK(c, models.TriggerResponse{
		RunID:  run.ID,
		Result: outcome,
		Report: webhook.Report(outcome),
	})
}
