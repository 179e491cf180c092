package fakes

import (
	"context"
	"errors"
	"sync"

	platformEvents "github.com/dhima/job-alert-trigger/platform/events"
)

// FakePublisher captures published events and can simulate failures.
type FakePublisher struct {
	mu        sync.Mutex
	Events    []platformEvents.RunEvent
	FailNext  bool
	FailError error
}

func (p *FakePublisher) Publish(_ context.Context, e platformEvents.RunEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailNext {
		p.FailNext = false
		if p.FailError == nil {
			p.FailError = errors.New("publish failed")
		}
		return p.FailError
	}
	p.Events = append(p.Events, e)
	return nil
}

// Published returns a copy of the captured events.
func (p *FakePublisher) Published() []platformEvents.RunEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platformEvents.RunEvent(nil), p.Events...)
}
