package handlers

import (
	"context"
	"net/http"

	"github.com/dhima/job-alert-trigger/internal/api/response"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunQuerier reads run history.
type RunQuerier interface {
	ListRuns(ctx context.Context, query models.ListRunsQuery) (models.RunListResponse, error)
	GetRun(ctx context.Context, id string) (*models.RunRecord, error)
}

// RunHandler handles run history queries.
type RunHandler struct {
	service RunQuerier
	logger  logging.Logger
}

// NewRunHandler creates a new run handler.
func NewRunHandler(service RunQuerier, logger logging.Logger) *RunHandler {
	return &RunHandler{
		service: service,
		logger:  logger.With(zap.String("handler", "run")),
	}
}

// ListRuns godoc
// @Summary List trigger and connection-test runs
// @Description Retrieves run history newest first, with optional filtering and pagination
// @Tags Runs
// @Produce json
// @Param kind query string false "Filter by run kind" Enums(trigger, connection_test)
// @Param status_class query string false "Filter by outcome" Enums(success, webhook_not_found, unexpected_status, timeout, connection_error, system_error)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} response.SuccessResponse{data=models.RunListResponse}
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/runs [get]
func (h *RunHandler) ListRuns(c *gin.Context) {
	var query models.ListRunsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("invalid list runs query",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.ValidationErrors(c, response.BindingErrors(err))
		return
	}

	result, err := h.service.ListRuns(c.Request.Context(), query)
	if handleServiceError(c, h.logger, err, "list runs") {
		return
	}

	response.Success(c, http.StatusOK, result, "")
}

// GetRun godoc
// @Summary Get a run
// @Description Retrieves a single run with its full log lines
// @Tags Runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.SuccessResponse{data=models.RunRecord}
// @Failure 404 {object} response.ErrorResponse "Run not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/runs/{id} [get]
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if handleServiceError(c, h.logger, err, "get run") {
		return
	}
	response.OK(c, run)
}
