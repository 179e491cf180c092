package fakes

import (
	"context"
	"sync"
	"time"

	"github.com/dhima/job-alert-trigger/internal/models"
)

// TriggerCall captures one call made to FakeTriggerer.
type TriggerCall struct {
	Endpoint string
	Request  models.TriggerRequest
	Timeout  time.Duration
}

// FakeTriggerer returns canned results and records every call.
type FakeTriggerer struct {
	mu         sync.Mutex
	Result     models.TriggerResult
	TestResult models.TriggerResult
	Triggers   []TriggerCall
	Tests      []TriggerCall
}

func (f *FakeTriggerer) Trigger(_ context.Context, endpoint string, req models.TriggerRequest, timeout time.Duration) models.TriggerResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Triggers = append(f.Triggers, TriggerCall{Endpoint: endpoint, Request: req, Timeout: timeout})
	return f.Result
}

func (f *FakeTriggerer) TestConnection(_ context.Context, endpoint string, timeout time.Duration) models.TriggerResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tests = append(f.Tests, TriggerCall{Endpoint: endpoint, Timeout: timeout})
	return f.TestResult
}

// TriggerCalls returns a copy of the recorded trigger calls.
func (f *FakeTriggerer) TriggerCalls() []TriggerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TriggerCall(nil), f.Triggers...)
}

// FakeRecorder counts metric observations.
type FakeRecorder struct {
	mu              sync.Mutex
	Observed        []models.TriggerResult
	PublishFailures int
	StoreFailures   int
}

func (f *FakeRecorder) ObserveRun(r models.TriggerResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Observed = append(f.Observed, r)
}

func (f *FakeRecorder) PublishFailed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PublishFailures++
}

func (f *FakeRecorder) StoreFailed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StoreFailures++
}

// StaticEndpoint is a fixed EndpointSource.
type StaticEndpoint string

func (s StaticEndpoint) WebhookURL() string { return string(s) }
