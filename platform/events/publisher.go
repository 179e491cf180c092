// Package events publishes finished alert runs to Kafka for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunEvent is the message emitted for every trigger or connection test.
type RunEvent struct {
	RunID        string    `json:"run_id"`
	Kind         string    `json:"kind"`
	StatusClass  string    `json:"status_class"`
	HTTPStatus   *int      `json:"http_status,omitempty"`
	EndpointHost string    `json:"endpoint_host"`
	Keywords     string    `json:"keywords,omitempty"`
	Location     string    `json:"location,omitempty"`
	MinRelevance int       `json:"min_relevance,omitempty"`
	Source       string    `json:"source"`
	StartedAt    time.Time `json:"started_at"`
	DurationMS   int64     `json:"duration_ms"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes run events to a Kafka topic keyed by run ID.
type Publisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewPublisher builds a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		BatchTimeout: 50 * time.Millisecond,
	}
	return newPublisher(w, logger)
}

func newPublisher(w messageWriter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish sends one event. Callers treat failures as non-fatal.
func (p *Publisher) Publish(ctx context.Context, event RunEvent) error {
	if event.RunID == "" {
		return errors.New("run event requires a run id")
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RunID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "status_class", Value: []byte(event.StatusClass)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("failed to publish run event",
			zap.String("run_id", event.RunID),
			zap.Error(err),
		)
		return fmt.Errorf("publish run event: %w", err)
	}

	p.logger.Debug("published run event",
		zap.String("run_id", event.RunID),
		zap.String("status_class", event.StatusClass),
	)
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events; used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, RunEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
