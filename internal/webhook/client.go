// Package webhook posts job-alert triggers to the external workflow and
// classifies what came back.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/dhima/job-alert-trigger/internal/logging"
	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/pkg/clock"
	"go.uber.org/zap"
)

const (
	// DefaultTriggerTimeout bounds a real trigger call.
	DefaultTriggerTimeout = 30 * time.Second
	// DefaultTestTimeout bounds a connection probe.
	DefaultTestTimeout = 10 * time.Second
	// DefaultUserAgent identifies this service to the workflow host.
	DefaultUserAgent = "JobAlertTrigger/1.0"

	maxDrainBytes = 64 << 10
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends trigger and connection-test payloads to a workflow webhook.
// It holds no endpoint; callers pass the current one on every call.
type Client struct {
	http      HTTPDoer
	clock     clock.Clock
	logger    logging.Logger
	userAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) { c.http = d }
}

// WithClock sets the clock used for timestamps and durations.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient builds a Client. Per-call timeouts come from the context, so the
// default http.Client carries none of its own.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Transport: DefaultTransport()},
		clock:     clock.RealClock{},
		logger:    logging.NewNoOpLogger(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "webhook_client"))
	return c
}

// DefaultTransport returns the pooled transport used by NewClient. Dial and
// TLS handshake carry no timeouts of their own; the per-call context bounds
// the whole exchange so a call never gives up before its configured timeout.
func DefaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// BuildPayload maps a request onto the flat webhook body. It is pure.
func BuildPayload(req models.TriggerRequest, now time.Time) models.TriggerPayload {
	req = req.WithDefaults()
	return models.TriggerPayload{
		Keywords:     req.Keywords,
		Location:     req.Location,
		MinRelevance: req.MinRelevance,
		UserEmail:    req.Email,
		TriggeredAt:  now.UTC().Format(time.RFC3339Nano),
		Source:       req.Source,
		TriggerType:  req.TriggerType,
	}
}

// BuildTestPayload returns the minimal probe body.
func BuildTestPayload(now time.Time) models.ConnectionTestPayload {
	return models.ConnectionTestPayload{
		Test:      true,
		Source:    models.SourceConnTest,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}

// Trigger posts the alert request to endpoint and reports the outcome.
// A timeout <= 0 means DefaultTriggerTimeout. Trigger never returns an error:
// every failure is folded into the result's StatusClass and LogLines.
func (c *Client) Trigger(ctx context.Context, endpoint string, req models.TriggerRequest, timeout time.Duration) models.TriggerResult {
	if timeout <= 0 {
		timeout = DefaultTriggerTimeout
	}
	req = req.WithDefaults()
	start := c.clock.Now()

	trace := []string{
		"Initializing job alert trigger",
		"Search keywords: " + req.Keywords,
		"Location: " + req.Location,
		fmt.Sprintf("Min relevance: %d%%", req.MinRelevance),
		"Alert email: " + req.Email,
	}
	trace = append(trace, stageLines()...)
	trace = append(trace, "Triggering workflow webhook")

	out := c.post(ctx, endpoint, BuildPayload(req, start), timeout)
	out.elapsed = clock.Since(c.clock, start)
	class := classify(out)
	trace = append(trace, triggerOutcomeLines(class, out, req)...)

	return c.finish(models.RunKindTrigger, endpoint, class, out, trace, start)
}

// TestConnection probes endpoint with a minimal payload. A timeout <= 0 means
// DefaultTestTimeout. Like Trigger, it never returns an error.
func (c *Client) TestConnection(ctx context.Context, endpoint string, timeout time.Duration) models.TriggerResult {
	if timeout <= 0 {
		timeout = DefaultTestTimeout
	}
	start := c.clock.Now()

	out := c.post(ctx, endpoint, BuildTestPayload(start), timeout)
	out.elapsed = clock.Since(c.clock, start)
	class := classify(out)
	trace := append([]string{"Testing webhook connection"}, testOutcomeLines(class, out)...)

	return c.finish(models.RunKindConnectionTest, endpoint, class, out, trace, start)
}

func (c *Client) finish(kind models.RunKind, endpoint string, class models.StatusClass, out outcome, trace []string, start time.Time) models.TriggerResult {
	result := models.TriggerResult{
		Kind:        kind,
		StatusClass: class,
		Headline:    class.Headline(),
		LogLines:    trace,
		StartedAt:   start,
		Duration:    clock.Since(c.clock, start),
	}
	if out.responded {
		status := out.status
		result.HTTPStatus = &status
	}

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("endpoint_host", endpointHost(endpoint)),
		zap.String("status_class", string(class)),
		zap.Duration("duration", result.Duration),
	}
	if out.responded {
		fields = append(fields, zap.Int("http_status", out.status))
	}
	if out.err != nil {
		fields = append(fields, zap.Error(out.err))
	}
	if class == models.StatusSuccess {
		c.logger.Info("webhook call finished", fields...)
	} else {
		c.logger.Warn("webhook call finished", fields...)
	}
	return result
}

// outcome is the raw result of one POST before classification.
type outcome struct {
	responded bool
	status    int
	err       error
	timeout   time.Duration
	elapsed   time.Duration
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, timeout time.Duration) (out outcome) {
	out.timeout = timeout
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("panic during webhook call: %v", r), timeout: timeout}
		}
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		out.err = fmt.Errorf("marshal payload: %w", err)
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		out.err = fmt.Errorf("build request: %w", err)
		return out
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		out.err = err
		return out
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	out.responded = true
	out.status = resp.StatusCode
	return out
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Host
}
