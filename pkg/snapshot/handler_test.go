package snapshot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/outcal/outcal/pkg/calendar"
	"github.com/outcal/outcal/pkg/calendar_sync"
	"github.com/outcal/outcal/pkg/outlook"
)

type stubExporter struct {
	payload []byte
	err     error
}

func (s *stubExporter) Payload(result calendar_sync.Result) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func (s *stubExporter) Filename() string {
	return "calendar_events_test.json"
}

func setupHandlerTest(t *testing.T) (*Handler, *Store, func()) {
	t.Helper()
	store, _, _, teardown := setup(t)
	handler := NewHandler(store, &stubExporter{payload: []byte(`{"events":[]}`)})
	return handler, store, teardown
}

func TestGetSnapshot_NoSyncYet(t *testing.T) {
	// Setup
	handler, _, teardown := setupHandlerTest(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()

	// Call the handler before any refresh has run
	handler.GetSnapshot(w, req)

	// Verify response
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err := json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Contains(t, errResponse.Error, "No synchronization")
}

func TestGetSnapshot_Success(t *testing.T) {
	// Setup
	handler, store, teardown := setupHandlerTest(t)
	defer teardown()

	folder := client.AddFolder("Calendar", true)
	client.AddEvent(folder, calendar.Event{
		Subject:   "Architecture review",
		Start:     fixedNow.Add(2 * time.Hour),
		End:       fixedNow.Add(3 * time.Hour),
		Organizer: "Dana Kowalska",
	})
	_, err := store.Refresh(context.Background())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.GetSnapshot(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dto ResultDTO
	err = json.NewDecoder(w.Body).Decode(&dto)
	assert.NoError(t, err)
	assert.NotEmpty(t, dto.RunID)
	assert.Equal(t, "Calendar", dto.Folder)
	assert.Equal(t, string(calendar_sync.StatusSucceeded), dto.Status)
	assert.Equal(t, 1, dto.Attempts)
	assert.Len(t, dto.Events, 1)
	assert.Equal(t, "Architecture review", dto.Events[0].Subject)
	assert.Equal(t, 3600, dto.Events[0].Duration)
	assert.Equal(t, "Calendar", dto.Events[0].Folder)
}

func TestTriggerSync_Success(t *testing.T) {
	// Setup
	handler, store, teardown := setupHandlerTest(t)
	defer teardown()

	folder := client.AddFolder("Calendar", true)
	client.AddEvent(folder, calendar.Event{
		Subject: "Team lunch",
		Start:   fixedNow.Add(time.Hour),
		End:     fixedNow.Add(2 * time.Hour),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.TriggerSync(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)

	var dto RunSummaryDTO
	err := json.NewDecoder(w.Body).Decode(&dto)
	assert.NoError(t, err)
	assert.Equal(t, string(calendar_sync.StatusSucceeded), dto.Status)
	assert.Equal(t, 1, dto.EventCount)

	// The run must also be visible through the store
	latest, ok := store.Latest()
	assert.True(t, ok)
	assert.Equal(t, dto.RunID, latest.RunID)
}

func TestTriggerSync_ReportsFailedRun(t *testing.T) {
	// Setup
	handler, _, teardown := setupHandlerTest(t)
	defer teardown()

	client.AddFolder("Calendar", true)
	client.FailEventsWith(outlook.ErrUnreachable, outlook.ErrUnreachable)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.TriggerSync(w, req)

	// A run that exhausted its retry budget is still reported, not an error
	assert.Equal(t, http.StatusOK, w.Code)

	var dto RunSummaryDTO
	err := json.NewDecoder(w.Body).Decode(&dto)
	assert.NoError(t, err)
	assert.Equal(t, string(calendar_sync.StatusFailed), dto.Status)
	assert.Equal(t, 2, dto.Attempts)
	assert.NotEmpty(t, dto.LastError)
}

func TestTriggerSync_FolderNotFound(t *testing.T) {
	// Setup with no folders registered at all
	handler, _, teardown := setupHandlerTest(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.TriggerSync(w, req)

	// Verify response
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err := json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Contains(t, errResponse.Error, "not found")
}

func TestExportJSON_Success(t *testing.T) {
	// Setup
	handler, store, teardown := setupHandlerTest(t)
	defer teardown()

	folder := client.AddFolder("Calendar", true)
	client.AddEvent(folder, calendar.Event{
		Subject: "Release planning",
		Start:   fixedNow.Add(time.Hour),
		End:     fixedNow.Add(2 * time.Hour),
	})
	_, err := store.Refresh(context.Background())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/export/json", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.ExportJSON(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "calendar_events_test.json")
	assert.JSONEq(t, `{"events":[]}`, w.Body.String())
}

func TestExportJSON_NoSyncYet(t *testing.T) {
	// Setup
	handler, _, teardown := setupHandlerTest(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/export/json", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.ExportJSON(w, req)

	// Verify response
	assert.Equal(t, http.StatusNotFound, w.Code)
}
