package models

import (
	"time"
)

// RunRecord is a persisted trigger or connection-test outcome.
type RunRecord struct {
	ID           string      `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Kind         RunKind     `json:"kind" example:"trigger"`
	StatusClass  StatusClass `json:"status_class" example:"success"`
	HTTPStatus   *int        `json:"http_status,omitempty" example:"200"`
	Endpoint     string      `json:"endpoint" example:"https://example.app.n8n.cloud/webhook/multiagent-trigger"`
	Keywords     string      `json:"keywords,omitempty" example:"Python Developer"`
	Location     string      `json:"location,omitempty" example:"Remote"`
	MinRelevance int         `json:"min_relevance,omitempty" example:"35"`
	Email        string      `json:"email,omitempty" example:"ranjan@example.com"`
	Source       string      `json:"source" example:"web_ui"`
	LogLines     []string    `json:"log_lines"`
	StartedAt    time.Time   `json:"started_at" example:"2025-11-05T10:00:00Z"`
	DurationMS   int64       `json:"duration_ms" example:"812"`
	CreatedAt    time.Time   `json:"created_at" example:"2025-11-05T10:00:01Z"`
} // @name RunRecord

// ListRunsQuery represents query parameters for listing runs.
type ListRunsQuery struct {
	Kind        string `form:"kind" binding:"omitempty,oneof=trigger connection_test" example:"trigger"`
	StatusClass string `form:"status_class" binding:"omitempty,oneof=success webhook_not_found unexpected_status timeout connection_error system_error" example:"success"`
	Page        int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
} // @name ListRunsQuery

// Normalize clamps paging values into their accepted range.
func (q ListRunsQuery) Normalize() ListRunsQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return q
}

// Offset is the row offset for the current page.
func (q ListRunsQuery) Offset() int {
	n := q.Normalize()
	return (n.Page - 1) * n.Limit
}

// RunListResponse represents the response for listing runs.
type RunListResponse struct {
	Runs       []RunRecord `json:"runs"`
	Pagination Pagination  `json:"pagination"`
} // @name RunListResponse

// Pagination represents pagination metadata.
type Pagination struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	PageSize     int   `json:"page_size" example:"20"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalRecords int64 `json:"total_records" example:"100"`
} // @name Pagination

// NewPagination computes page metadata for a normalized query.
func NewPagination(q ListRunsQuery, total int64) Pagination {
	q = q.Normalize()
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Pagination{
		CurrentPage:  q.Page,
		PageSize:     q.Limit,
		TotalPages:   totalPages,
		TotalRecords: total,
	}
}

// WebhookSettings is the endpoint configuration exposed over the API.
type WebhookSettings struct {
	URL       string     `json:"url" example:"https://example.app.n8n.cloud/webhook/multiagent-trigger"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" example:"2025-11-05T10:00:00Z"`
} // @name WebhookSettings

// UpdateWebhookRequest is the body for saving the endpoint.
type UpdateWebhookRequest struct {
	URL string `json:"url" binding:"required" example:"https://example.app.n8n.cloud/webhook/multiagent-trigger"`
} // @name UpdateWebhookRequest

// TestConnectionRequest optionally overrides the saved endpoint for a probe.
type TestConnectionRequest struct {
	URL string `json:"url,omitempty" example:"https://example.app.n8n.cloud/webhook/multiagent-trigger"`
} // @name TestConnectionRequest
