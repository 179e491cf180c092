package models

import (
	"time"
)

// Default tags stamped on manual triggers from the web UI.
const (
	SourceWebUI        = "web_ui"
	SourceScheduler    = "scheduler"
	SourceConnTest     = "connection_test"
	TriggerTypeManual  = "manual"
	TriggerTypeCronJob = "scheduled"
)

// TriggerRequest holds the alert parameters a user submits to start the external workflow.
type TriggerRequest struct {
	Keywords     string `json:"keywords" example:"Python Developer"`
	Location     string `json:"location" example:"Remote"`
	MinRelevance int    `json:"min_relevance" example:"35"`
	Email        string `json:"email" example:"ranjan@example.com"`
	Source       string `json:"source,omitempty" example:"web_ui"`
	TriggerType  string `json:"trigger_type,omitempty" example:"manual"`
} // @name TriggerRequest

// WithDefaults fills in the descriptive tags when the caller left them empty.
func (r TriggerRequest) WithDefaults() TriggerRequest {
	if r.Source == "" {
		r.Source = SourceWebUI
	}
	if r.TriggerType == "" {
		r.TriggerType = TriggerTypeManual
	}
	return r
}

// TriggerPayload is the JSON body posted to the workflow webhook.
type TriggerPayload struct {
	Keywords     string `json:"keywords"`
	Location     string `json:"location"`
	MinRelevance int    `json:"min_relevance"`
	UserEmail    string `json:"user_email"`
	TriggeredAt  string `json:"triggered_at"`
	Source       string `json:"source"`
	TriggerType  string `json:"trigger_type"`
}

// ConnectionTestPayload is the minimal body used to probe the webhook.
type ConnectionTestPayload struct {
	Test      bool   `json:"test"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// StatusClass classifies the outcome of a single webhook call.
type StatusClass string

const (
	StatusSuccess          StatusClass = "success"
	StatusWebhookNotFound  StatusClass = "webhook_not_found"
	StatusUnexpectedStatus StatusClass = "unexpected_status"
	StatusTimeout          StatusClass = "timeout"
	StatusConnectionError  StatusClass = "connection_error"
	StatusSystemError      StatusClass = "system_error"
)

// AllStatusClasses lists every classification in priority order.
var AllStatusClasses = []StatusClass{
	StatusSuccess,
	StatusWebhookNotFound,
	StatusUnexpectedStatus,
	StatusTimeout,
	StatusConnectionError,
	StatusSystemError,
}

// Headline is the short banner shown above a report.
func (s StatusClass) Headline() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusWebhookNotFound:
		return "WEBHOOK ERROR"
	case StatusUnexpectedStatus:
		return "PARTIAL SUCCESS"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusConnectionError:
		return "CONNECTION ERROR"
	default:
		return "SYSTEM ERROR"
	}
}

// RemoteMayHaveAccepted is true when the local call failed to observe success
// but the workflow could still be running.
func (s StatusClass) RemoteMayHaveAccepted() bool {
	return s == StatusUnexpectedStatus || s == StatusTimeout
}

// RunKind distinguishes real triggers from connection probes.
type RunKind string

const (
	RunKindTrigger        RunKind = "trigger"
	RunKindConnectionTest RunKind = "connection_test"
)

// TriggerResult is the report returned for every webhook call.
type TriggerResult struct {
	Kind        RunKind       `json:"kind" example:"trigger"`
	StatusClass StatusClass   `json:"status_class" example:"success"`
	Headline    string        `json:"headline" example:"SUCCESS"`
	HTTPStatus  *int          `json:"http_status,omitempty" example:"200"`
	LogLines    []string      `json:"log_lines"`
	StartedAt   time.Time     `json:"started_at" example:"2025-11-05T10:00:00Z"`
	Duration    time.Duration `json:"duration" swaggertype:"integer" example:"812000000"`
} // @name TriggerResult

// Succeeded reports whether the webhook answered 200.
func (r TriggerResult) Succeeded() bool {
	return r.StatusClass == StatusSuccess
}

// TriggerResponse is returned by the trigger and connection-test endpoints.
type TriggerResponse struct {
	RunID  string        `json:"run_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Result TriggerResult `json:"result"`
	Report string        `json:"report"`
} // @name TriggerResponse
