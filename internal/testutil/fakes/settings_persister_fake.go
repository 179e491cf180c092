package fakes

import (
	"context"
	"errors"
	"sync"
	"time"
)

// FakeSettingsPersister is an in-memory settings.Persister.
type FakeSettingsPersister struct {
	mu        sync.Mutex
	URL       string
	UpdatedAt *time.Time
	Saves     int
	FailLoad  bool
	FailSave  bool
}

func (f *FakeSettingsPersister) GetWebhookURL(_ context.Context) (string, *time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailLoad {
		return "", nil, errors.New("load failed")
	}
	return f.URL, f.UpdatedAt, nil
}

func (f *FakeSettingsPersister) SaveWebhookURL(_ context.Context, url string, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSave {
		return errors.New("save failed")
	}
	f.URL = url
	f.UpdatedAt = &updatedAt
	f.Saves++
	return nil
}
