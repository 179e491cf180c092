package runs

import (
	"context"
	"time"

	"github.com/dhima/job-alert-trigger/internal/models"
	platformEvents "github.com/dhima/job-alert-trigger/platform/events"
)

// Triggerer performs the webhook calls; *webhook.Client satisfies it.
type Triggerer interface {
	Trigger(ctx context.Context, endpoint string, req models.TriggerRequest, timeout time.Duration) models.TriggerResult
	TestConnection(ctx context.Context, endpoint string, timeout time.Duration) models.TriggerResult
}

// EndpointSource yields the currently configured webhook URL.
type EndpointSource interface {
	WebhookURL() string
}

// RunStore defines persistence required by the run service.
type RunStore interface {
	CreateRun(ctx context.Context, run *models.RunRecord) error
	GetRun(ctx context.Context, id string) (*models.RunRecord, error)
	ListRuns(ctx context.Context, query models.ListRunsQuery) ([]models.RunRecord, int64, error)
}

// EventPublisher abstracts the Kafka publisher for testability.
type EventPublisher interface {
	Publish(ctx context.Context, event platformEvents.RunEvent) error
}

// Recorder receives run metrics.
type Recorder interface {
	ObserveRun(result models.TriggerResult)
	PublishFailed()
	StoreFailed()
}
