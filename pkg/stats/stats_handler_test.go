package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/outcal/outcal/pkg/calendar"
	"github.com/outcal/outcal/pkg/calendar_sync"
)

var provider = newResultProviderStub()

func setupStatsHandlerTest(t *testing.T) (*StatsHandler, func()) {
	t.Helper()
	handler := NewStatsHandler(provider, NewStatsServiceImpl(), NewCsvStatsTransformer())
	return handler, func() {
		provider.reset()
	}
}

func syncResultWithEvents(events []calendar.Event) calendar_sync.Result {
	return calendar_sync.Result{
		RunID:    "run-1",
		Folder:   "Calendar",
		Status:   calendar_sync.StatusSucceeded,
		Attempts: 1,
		Events:   events,
	}
}

func TestGetStats_NoSyncYet(t *testing.T) {
	// Setup
	handler, teardown := setupStatsHandlerTest(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	// Call the handler before any run has completed
	handler.GetStats(w, req)

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

func TestGetStats_JSON(t *testing.T) {
	// Setup
	handler, teardown := setupStatsHandlerTest(t)
	defer teardown()

	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	provider.set(syncResultWithEvents([]calendar.Event{
		{
			Subject:   "Weekly planning",
			Start:     monday,
			End:       monday.Add(time.Hour),
			Organizer: "Dana Kowalska",
		},
		{
			Subject:   "Design review",
			Start:     monday.Add(26 * time.Hour),
			End:       monday.Add(26*time.Hour + 30*time.Minute),
			Organizer: "Priya Nair",
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.GetStats(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dto SummaryDTO
	err := json.NewDecoder(w.Body).Decode(&dto)
	assert.NoError(t, err)
	assert.Equal(t, "run-1", dto.RunID)
	assert.Equal(t, "Calendar", dto.Folder)
	assert.Equal(t, 2, dto.TotalMeetings)
	assert.Equal(t, 90*60, dto.TotalTime)
	assert.Equal(t, 45*60, dto.AverageTime)
	assert.Equal(t, "Monday", dto.BusiestDay)
	assert.Len(t, dto.PerWeekday, 7)
	assert.Equal(t, "Monday", dto.PerWeekday[0].Weekday)
	assert.Equal(t, 1, dto.PerWeekday[0].Meetings)
	assert.Equal(t, 3600, dto.PerWeekday[0].Duration)
	assert.Len(t, dto.PerOrganizer, 2)
	assert.Equal(t, "Dana Kowalska", dto.PerOrganizer[0].Organizer)
	assert.Len(t, dto.Timeline, 2)
	assert.Equal(t, "Weekly planning", dto.Timeline[0].Subject)
}

func TestGetStats_CSV(t *testing.T) {
	// Setup
	handler, teardown := setupStatsHandlerTest(t)
	defer teardown()

	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	provider.set(syncResultWithEvents([]calendar.Event{
		{
			Subject:   "Weekly planning",
			Start:     monday,
			End:       monday.Add(time.Hour),
			Organizer: "Dana Kowalska",
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Accept", "text/csv")
	w := httptest.NewRecorder()

	// Call the handler
	handler.GetStats(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	lines := strings.Split(w.Body.String(), "\n")
	assert.Equal(t, "Weekday,Meetings,Duration", lines[0])
	assert.Equal(t, "Monday,1,01:00:00", lines[1])
	assert.Contains(t, w.Body.String(), "TOTAL,1,01:00:00")
	assert.Contains(t, w.Body.String(), "Dana Kowalska,1,01:00:00")
}
