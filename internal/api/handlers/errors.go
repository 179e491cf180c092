package handlers

import (
	"errors"

	"github.com/dhima/job-alert-trigger/internal/api/response"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError writes the error response for err and reports whether it did.
func handleServiceError(c *gin.Context, logger logging.Logger, err error, operation string) bool {
	if err == nil {
		return false
	}

	var validationErr models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, "validation failed", validationErr.Error())
	case errors.Is(err, models.ErrEndpointNotConfigured):
		response.Conflict(c, "webhook not configured", "save a webhook URL under /api/v1/settings/webhook first")
	case errors.Is(err, storage.ErrRunNotFound):
		response.NotFound(c, "run not found")
	default:
		logger.Error(operation+" failed",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "internal server error")
	}
	return true
}
