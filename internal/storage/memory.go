package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/dhima/job-alert-trigger/internal/models"
)

// DefaultMemoryCapacity bounds MemoryRunStore when no capacity is given.
const DefaultMemoryCapacity = 500

// MemoryRunStore keeps recent runs in process when no database is configured.
// The oldest runs are evicted once capacity is reached.
type MemoryRunStore struct {
	mu       sync.RWMutex
	runs     []models.RunRecord
	capacity int
}

// NewMemoryRunStore returns an empty store. capacity <= 0 means DefaultMemoryCapacity.
func NewMemoryRunStore(capacity int) *MemoryRunStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRunStore{capacity: capacity}
}

func (m *MemoryRunStore) CreateRun(_ context.Context, run *models.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *run
	stored.LogLines = append([]string{}, run.LogLines...)
	m.runs = append(m.runs, stored)
	if over := len(m.runs) - m.capacity; over > 0 {
		m.runs = append([]models.RunRecord(nil), m.runs[over:]...)
	}
	return nil
}

func (m *MemoryRunStore) GetRun(_ context.Context, id string) (*models.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.runs {
		if m.runs[i].ID == id {
			run := m.runs[i]
			return &run, nil
		}
	}
	return nil, ErrRunNotFound
}

func (m *MemoryRunStore) ListRuns(_ context.Context, query models.ListRunsQuery) ([]models.RunRecord, int64, error) {
	query = query.Normalize()

	m.mu.RLock()
	matched := make([]models.RunRecord, 0, len(m.runs))
	for _, run := range m.runs {
		if query.Kind != "" && string(run.Kind) != query.Kind {
			continue
		}
		if query.StatusClass != "" && string(run.StatusClass) != query.StatusClass {
			continue
		}
		matched = append(matched, run)
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartedAt.After(matched[j].StartedAt)
	})

	total := int64(len(matched))
	start := query.Offset()
	if start >= len(matched) {
		return []models.RunRecord{}, total, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
