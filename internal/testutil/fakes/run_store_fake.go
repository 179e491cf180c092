package fakes

import (
	"context"
	"errors"
	"sync"

	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/internal/storage"
)

// FakeRunStore is an in-memory RunStore that records queries and can fail on demand.
type FakeRunStore struct {
	mu         sync.Mutex
	Runs       map[string]models.RunRecord
	Order      []string
	LastQuery  models.ListRunsQuery
	FailCreate bool
	FailList   bool
}

func NewFakeRunStore() *FakeRunStore {
	return &FakeRunStore{Runs: map[string]models.RunRecord{}}
}

func (f *FakeRunStore) CreateRun(_ context.Context, run *models.RunRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate {
		return errors.New("create failed")
	}
	f.Runs[run.ID] = *run
	f.Order = append(f.Order, run.ID)
	return nil
}

func (f *FakeRunStore) GetRun(_ context.Context, id string) (*models.RunRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.Runs[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return &run, nil
}

func (f *FakeRunStore) ListRuns(_ context.Context, query models.ListRunsQuery) ([]models.RunRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastQuery = query
	if f.FailList {
		return nil, 0, errors.New("list failed")
	}
	out := make([]models.RunRecord, 0, len(f.Order))
	for i := len(f.Order) - 1; i >= 0; i-- {
		out = append(out, f.Runs[f.Order[i]])
	}
	return out, int64(len(out)), nil
}

// Count returns the number of stored runs.
func (f *FakeRunStore) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Runs)
}
