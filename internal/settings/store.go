// Package settings holds the webhook endpoint the operator configured.
package settings

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/pkg/clock"
	"go.uber.org/zap"
)

// Persister keeps the endpoint across restarts.
type Persister interface {
	GetWebhookURL(ctx context.Context) (string, *time.Time, error)
	SaveWebhookURL(ctx context.Context, url string, updatedAt time.Time) error
}

// Store is the single mutable endpoint value. Reads are cheap and always see
// the last saved URL.
type Store struct {
	mu        sync.RWMutex
	url       string
	updatedAt *time.Time

	persister Persister
	clock     clock.Clock
	logger    logging.Logger
}

// NewStore seeds the store with initial, typically WEBHOOK_URL. persister may be nil.
func NewStore(initial string, persister Persister, clk clock.Clock, logger logging.Logger) *Store {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Store{
		url:       strings.TrimSpace(initial),
		persister: persister,
		clock:     clk,
		logger:    logger.With(zap.String("component", "settings")),
	}
}

// Load replaces the seed value with the persisted one, if any.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	saved, updatedAt, err := s.persister.GetWebhookURL(ctx)
	if err != nil {
		return fmt.Errorf("load webhook url: %w", err)
	}
	if saved == "" {
		return nil
	}

	s.mu.Lock()
	s.url = saved
	s.updatedAt = updatedAt
	s.mu.Unlock()

	s.logger.Info("loaded saved webhook url", zap.String("endpoint_host", hostOf(saved)))
	return nil
}

// Refresh re-reads the persisted endpoint so a process that does not own
// writes, such as the scheduler, sees URLs saved through the API. On failure
// the cached value is left in place.
func (s *Store) Refresh(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	saved, updatedAt, err := s.persister.GetWebhookURL(ctx)
	if err != nil {
		return fmt.Errorf("refresh webhook url: %w", err)
	}
	if saved == "" {
		return nil
	}

	s.mu.Lock()
	changed := saved != s.url
	s.url = saved
	s.updatedAt = updatedAt
	s.mu.Unlock()

	if changed {
		s.logger.Info("webhook url changed", zap.String("endpoint_host", hostOf(saved)))
	}
	return nil
}

// WebhookURL returns the current endpoint, or "" when none is configured.
func (s *Store) WebhookURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.url
}

// Settings returns the endpoint with its last update time.
func (s *Store) Settings() models.WebhookSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.WebhookSettings{URL: s.url, UpdatedAt: s.updatedAt}
}

// SetWebhookURL validates and saves a new endpoint. Last write wins.
func (s *Store) SetWebhookURL(ctx context.Context, raw string) (models.WebhookSettings, error) {
	normalized, err := ValidateURL(raw)
	if err != nil {
		return models.WebhookSettings{}, err
	}

	now := s.clock.Now()
	if s.persister != nil {
		if err := s.persister.SaveWebhookURL(ctx, normalized, now); err != nil {
			return models.WebhookSettings{}, fmt.Errorf("save webhook url: %w", err)
		}
	}

	s.mu.Lock()
	s.url = normalized
	s.updatedAt = &now
	s.mu.Unlock()

	s.logger.Info("webhook url updated", zap.String("endpoint_host", hostOf(normalized)))
	return models.WebhookSettings{URL: normalized, UpdatedAt: &now}, nil
}

// MaxURLLength matches the VARCHAR(2048) endpoint columns in MySQL.
const MaxURLLength = 2048

// ValidateURL accepts absolute http(s) URLs with a host, up to MaxURLLength bytes.
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", models.NewValidationError("url is required")
	}
	if len(trimmed) > MaxURLLength {
		return "", models.NewValidationError("url must be at most %d characters", MaxURLLength)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", models.NewValidationError("url is not valid: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", models.NewValidationError("url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", models.NewValidationError("url must include a host")
	}
	return trimmed, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
