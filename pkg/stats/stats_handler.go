package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/outcal/outcal/internal/rest"
	"github.com/outcal/outcal/pkg/calendar_sync"
)

// ResultProvider hands out the most recent synchronization result. The second
// return value is false when no run has completed yet.
type ResultProvider interface {
	Latest() (calendar_sync.Result, bool)
}

type WeekdayStatsDTO struct {
	Weekday  string `json:"weekday"`
	Meetings int    `json:"meetings"`
	Duration int    `json:"duration"`
}

type OrganizerStatsDTO struct {
	Organizer string `json:"organizer"`
	Meetings  int    `json:"meetings"`
	Duration  int    `json:"duration"`
}

type TimelineEntryDTO struct {
	Subject  string    `json:"subject"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"`
}

type SummaryDTO struct {
	RunID         string              `json:"runId"`
	Folder        string              `json:"folder"`
	TotalMeetings int                 `json:"totalMeetings"`
	TotalTime     int                 `json:"totalTime"`
	AverageTime   int                 `json:"averageTime"`
	BusiestDay    string              `json:"busiestDay"`
	PerWeekday    []WeekdayStatsDTO   `json:"perWeekday"`
	PerOrganizer  []OrganizerStatsDTO `json:"perOrganizer"`
	Timeline      []TimelineEntryDTO  `json:"timeline"`
}

type StatsHandler struct {
	provider         ResultProvider
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(provider ResultProvider, statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{provider, statsService, csvStatsRenderer}
}

func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	result, ok := handler.provider.Latest()
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "No synchronization has completed yet",
			Details: "Trigger a run with POST /api/sync",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	summary := handler.statsService.Summarize(result.Events)

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderStats(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	} else {
		w.Header().Set("Content-Type", "application/json")
		responseStats := convertToJsonResponse(result, &summary)
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(responseStats); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
}

func convertToJsonResponse(result calendar_sync.Result, summary *Summary) *SummaryDTO {
	perWeekday := make([]WeekdayStatsDTO, 0, len(summary.PerWeekday))
	for _, weekday := range summary.PerWeekday {
		perWeekday = append(perWeekday, WeekdayStatsDTO{
			Weekday:  weekday.Weekday,
			Meetings: weekday.Meetings,
			Duration: int(weekday.Duration.Seconds()),
		})
	}

	perOrganizer := make([]OrganizerStatsDTO, 0, len(summary.PerOrganizer))
	for _, organizer := range summary.PerOrganizer {
		perOrganizer = append(perOrganizer, OrganizerStatsDTO{
			Organizer: organizer.Organizer,
			Meetings:  organizer.Meetings,
			Duration:  int(organizer.Duration.Seconds()),
		})
	}

	timeline := make([]TimelineEntryDTO, 0, len(summary.Timeline))
	for _, entry := range summary.Timeline {
		timeline = append(timeline, TimelineEntryDTO{
			Subject:  entry.Subject,
			Start:    entry.Start,
			End:      entry.End,
			Duration: int(entry.Duration.Seconds()),
		})
	}

	return &SummaryDTO{
		RunID:         result.RunID,
		Folder:        result.Folder,
		TotalMeetings: summary.TotalMeetings,
		TotalTime:     int(summary.TotalTime.Seconds()),
		AverageTime:   int(summary.AverageTime.Seconds()),
		BusiestDay:    summary.BusiestDay,
		PerWeekday:    perWeekday,
		PerOrganizer:  perOrganizer,
		Timeline:      timeline,
	}
}
