package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memRun(id string, kind models.RunKind, class models.StatusClass, startedAt time.Time) *models.RunRecord {
	return &models.RunRecord{ID: id, Kind: kind, StatusClass: class, StartedAt: startedAt, LogLines: []string{id}}
}

func TestMemoryRunStore_WhenListing_ThenNewestFirstAndFiltered(t *testing.T) {
	// Arrange
	store := NewMemoryRunStore(0)
	base := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, store.CreateRun(ctx, memRun("a", models.RunKindTrigger, models.StatusSuccess, base)))
	require.NoError(t, store.CreateRun(ctx, memRun("b", models.RunKindConnectionTest, models.StatusSuccess, base.Add(time.Minute))))
	require.NoError(t, store.CreateRun(ctx, memRun("c", models.RunKindTrigger, models.StatusTimeout, base.Add(2*time.Minute))))

	// Act
	all, total, err := store.ListRuns(ctx, models.ListRunsQuery{})
	triggers, triggerTotal, _ := store.ListRuns(ctx, models.ListRunsQuery{Kind: "trigger"})
	timeouts, _, _ := store.ListRuns(ctx, models.ListRunsQuery{StatusClass: "timeout"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"c", "b", "a"}, ids(all))
	assert.Equal(t, int64(2), triggerTotal)
	assert.Equal(t, []string{"c", "a"}, ids(triggers))
	assert.Equal(t, []string{"c"}, ids(timeouts))
}

func TestMemoryRunStore_WhenPaging_ThenSlicesResults(t *testing.T) {
	// Arrange
	store := NewMemoryRunStore(0)
	base := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.CreateRun(context.Background(),
			memRun(fmt.Sprintf("r%d", i), models.RunKindTrigger, models.StatusSuccess, base.Add(time.Duration(i)*time.Minute))))
	}

	// Act
	page2, total, err := store.ListRuns(context.Background(), models.ListRunsQuery{Page: 2, Limit: 2})
	beyond, _, _ := store.ListRuns(context.Background(), models.ListRunsQuery{Page: 9, Limit: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []string{"r2", "r1"}, ids(page2))
	assert.Empty(t, beyond)
}

func TestMemoryRunStore_WhenOverCapacity_ThenEvictsOldest(t *testing.T) {
	// Arrange
	store := NewMemoryRunStore(2)
	base := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// Act
	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateRun(ctx,
			memRun(fmt.Sprintf("r%d", i), models.RunKindTrigger, models.StatusSuccess, base.Add(time.Duration(i)*time.Minute))))
	}

	// Assert
	_, err := store.GetRun(ctx, "r0")
	assert.ErrorIs(t, err, ErrRunNotFound)
	got, err := store.GetRun(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
}

func TestMemoryRunStore_WhenCallerMutatesInput_ThenStoredCopyUnchanged(t *testing.T) {
	// Arrange
	store := NewMemoryRunStore(0)
	run := memRun("a", models.RunKindTrigger, models.StatusSuccess, time.Now())

	// Act
	require.NoError(t, store.CreateRun(context.Background(), run))
	run.LogLines[0] = "mutated"

	// Assert
	got, err := store.GetRun(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.LogLines)
}

func ids(runs []models.RunRecord) []string {
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.ID)
	}
	return out
}
