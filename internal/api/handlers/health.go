package handlers

import (
	"github.com/dhima/job-alert-trigger/internal/api/response"
	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceName identifies this service in health responses and logs.
const ServiceName = logging.ServiceName

// EndpointSource reports the configured webhook URL.
type EndpointSource interface {
	WebhookURL() string
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger    logging.Logger
	endpoints EndpointSource
	storage   string
}

// NewHealthHandler creates a new health check handler. storage names the run
// history backend ("mysql" or "memory").
func NewHealthHandler(logger logging.Logger, endpoints EndpointSource, storage string) *HealthHandler {
	return &HealthHandler{
		logger:    logger.With(zap.String("handler", "health")),
		endpoints: endpoints,
		storage:   storage,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status            string `json:"status" example:"ok"`
	Service           string `json:"service" example:"job-alert-trigger"`
	Version           string `json:"version" example:"1.0.0"`
	WebhookConfigured bool   `json:"webhook_configured" example:"true"`
	Storage           string `json:"storage" example:"mysql"`
} // @name HealthResponse

// Health godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API service and whether a webhook URL is configured
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	configured := h.endpoints.WebhookURL() != ""
	if !configured {
		h.logger.Debug("health check without webhook url",
			zap.String("storage", h.storage),
			zap.String("request_id", response.GetRequestID(c)),
		)
	}
	response.OK(c, HealthResponse{
		Status:            "ok",
		Service:           ServiceName,
		Version:           "1.0.0",
		WebhookConfigured: configured,
		Storage:           h.storage,
	})
}
