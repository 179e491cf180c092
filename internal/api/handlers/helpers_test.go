package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhima/job-alert-trigger/internal/models"
	"github.com/dhima/job-alert-trigger/internal/runs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testLimits = runs.Limits{MinRelevanceFloor: 20, MinRelevanceCeiling: 80}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var wrapper struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
	return wrapper.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sampleResult(kind models.RunKind, class models.StatusClass, status *int) models.TriggerResult {
	return models.TriggerResult{
		Kind:        kind,
		StatusClass: class,
		Headline:    class.Headline(),
		HTTPStatus:  status,
		LogLines:    []string{"line one"},
		StartedAt:   time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC),
		Duration:    250 * time.Millisecond,
	}
}

type fakeAlertService struct {
	got    []models.TriggerRequest
	result models.TriggerResult
	err    error
}

func (f *fakeAlertService) Limits() runs.Limits { return testLimits }

func (f *fakeAlertService) Trigger(_ context.Context, req models.TriggerRequest) (models.RunRecord, models.TriggerResult, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return models.RunRecord{}, models.TriggerResult{}, f.err
	}
	return models.RunRecord{ID: "run-1"}, f.result, nil
}

type fakeSettingsStore struct {
	current models.WebhookSettings
	err     error
}

func (f *fakeSettingsStore) Settings() models.WebhookSettings { return f.current }

func (f *fakeSettingsStore) SetWebhookURL(_ context.Context, raw string) (models.WebhookSettings, error) {
	if f.err != nil {
		return models.WebhookSettings{}, f.err
	}
	f.current = models.WebhookSettings{URL: raw}
	return f.current, nil
}

func (f *fakeSettingsStore) WebhookURL() string { return f.current.URL }

type fakeTester struct {
	override []string
	result   models.TriggerResult
	err      error
}

func (f *fakeTester) TestConnection(_ context.Context, override string) (models.RunRecord, models.TriggerResult, error) {
	f.override = append(f.override, override)
	if f.err != nil {
		return models.RunRecord{}, models.TriggerResult{}, f.err
	}
	return models.RunRecord{ID: "run-test"}, f.result, nil
}

type fakeRunQuerier struct {
	list      models.RunListResponse
	lastQuery models.ListRunsQuery
	run       *models.RunRecord
	err       error
}

func (f *fakeRunQuerier) ListRuns(_ context.Context, q models.ListRunsQuery) (models.RunListResponse, error) {
	f.lastQuery = q
	return f.list, f.err
}

func (f *fakeRunQuerier) GetRun(_ context.Context, _ string) (*models.RunRecord, error) {
	return f.run, f.err
}

func intPtr(v int) *int { return &v }
