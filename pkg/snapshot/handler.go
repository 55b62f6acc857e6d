package snapshot

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/outcal/outcal/internal/rest"
	"github.com/outcal/outcal/pkg/calendar"
	"github.com/outcal/outcal/pkg/calendar_sync"
	"github.com/outcal/outcal/pkg/outlook"
)

// Exporter renders a run result as a downloadable JSON document.
type Exporter interface {
	Payload(result calendar_sync.Result) ([]byte, error)
	Filename() string
}

type Handler struct {
	store    *Store
	exporter Exporter
}

func NewHandler(store *Store, exporter Exporter) *Handler {
	return &Handler{store: store, exporter: exporter}
}

type ResultDTO struct {
	RunID     string     `json:"runId"`
	Folder    string     `json:"folder"`
	Window    WindowDTO  `json:"window"`
	Status    string     `json:"status"`
	Attempts  int        `json:"attempts"`
	Started   time.Time  `json:"started"`
	Finished  time.Time  `json:"finished"`
	LastError string     `json:"lastError,omitempty"`
	Events    []EventDTO `json:"events"`
}

type WindowDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type EventDTO struct {
	EntryID     string    `json:"entryId"`
	Subject     string    `json:"subject"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Duration    int       `json:"duration"`
	Location    string    `json:"location,omitempty"`
	Organizer   string    `json:"organizer,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Folder      string    `json:"folder"`
	IsRecurring bool      `json:"isRecurring"`
	Body        string    `json:"body,omitempty"`
}

type RunSummaryDTO struct {
	RunID      string    `json:"runId"`
	Folder     string    `json:"folder"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	EventCount int       `json:"eventCount"`
	LastError  string    `json:"lastError,omitempty"`
	Finished   time.Time `json:"finished"`
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	result, ok := h.store.Latest()
	if !ok {
		writeNoSnapshot(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, outlook.ErrFolderNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Calendar folder not found",
				Details: err.Error(),
			}); encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(runToSummaryDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	result, ok := h.store.Latest()
	if !ok {
		writeNoSnapshot(w)
		return
	}

	payload, err := h.exporter.Payload(result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.exporter.Filename()+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Errorf("failed to write export response: %v", err)
	}
}

func writeNoSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "No synchronization has completed yet",
		Details: "Trigger a run with POST /api/sync",
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resultToDTO(result calendar_sync.Result) ResultDTO {
	events := make([]EventDTO, 0, len(result.Events))
	for _, event := range result.Events {
		events = append(events, eventToDTO(event))
	}
	return ResultDTO{
		RunID:     result.RunID,
		Folder:    result.Folder,
		Window:    WindowDTO{Start: result.Window.Start, End: result.Window.End},
		Status:    string(result.Status),
		Attempts:  result.Attempts,
		Started:   result.Started,
		Finished:  result.Finished,
		LastError: result.LastErr,
		Events:    events,
	}
}

func eventToDTO(event calendar.Event) EventDTO {
	return EventDTO{
		EntryID:     event.EntryID,
		Subject:     event.Subject,
		Start:       event.Start,
		End:         event.End,
		Duration:    int(event.Duration().Seconds()),
		Location:    event.Location,
		Organizer:   event.Organizer,
		Attendees:   event.Attendees,
		Categories:  event.Categories,
		Folder:      event.Folder,
		IsRecurring: event.IsRecurring,
		Body:        event.Body,
	}
}

func runToSummaryDTO(result calendar_sync.Result) RunSummaryDTO {
	return RunSummaryDTO{
		RunID:      result.RunID,
		Folder:     result.Folder,
		Status:     string(result.Status),
		Attempts:   result.Attempts,
		EventCount: len(result.Events),
		LastError:  result.LastErr,
		Finished:   result.Finished,
	}
}
