package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/outcal/outcal/internal/utils"
	"github.com/outcal/outcal/pkg/calendar"
	"github.com/outcal/outcal/pkg/calendar_sync"
)

const exportFilenameLayout = "20060102_150405"

type exportMetadata struct {
	ExportedAt  time.Time `json:"exported_at"`
	RunID       string    `json:"run_id"`
	Folder      string    `json:"folder"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	EventCount  int       `json:"event_count"`
	Description string    `json:"description"`
}

type exportEvent struct {
	Subject     string    `json:"subject"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Folder      string    `json:"folder,omitempty"`
	IsRecurring bool      `json:"is_recurring,omitempty"`
	Body        string    `json:"body"`
}

type exportDocument struct {
	Metadata exportMetadata `json:"metadata"`
	Events   []exportEvent  `json:"events"`
}

// JSONExporter writes run results as JSON documents suitable for LLM input.
type JSONExporter struct {
	dir   string
	clock utils.Clock
}

func NewJSONExporter(dir string, clock utils.Clock) *JSONExporter {
	return &JSONExporter{dir: dir, clock: clock}
}

// Payload renders the export document without writing it anywhere.
func (e *JSONExporter) Payload(result calendar_sync.Result) ([]byte, error) {
	doc := exportDocument{
		Metadata: exportMetadata{
			ExportedAt:  e.clock.Now(),
			RunID:       result.RunID,
			Folder:      result.Folder,
			Status:      string(result.Status),
			Attempts:    result.Attempts,
			WindowStart: result.Window.Start,
			WindowEnd:   result.Window.End,
			EventCount:  len(result.Events),
			Description: "Calendar events exported from Outlook",
		},
		Events: toExportEvents(result.Events),
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode events to JSON: %w", err)
	}
	return payload, nil
}

// Filename returns the timestamped name used for exported files.
func (e *JSONExporter) Filename() string {
	return fmt.Sprintf("calendar_events_%s.json", e.clock.Now().Format(exportFilenameLayout))
}

// Export writes the document into the configured directory and returns the
// path of the written file.
func (e *JSONExporter) Export(result calendar_sync.Result) (string, error) {
	payload, err := e.Payload(result)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		err = fmt.Errorf("failed to create export directory %q: %w", e.dir, err)
		log.Error(err)
		return "", err
	}

	path := filepath.Join(e.dir, e.Filename())
	if err := os.WriteFile(path, payload, 0644); err != nil {
		err = fmt.Errorf("failed to write export file %q: %w", path, err)
		log.Error(err)
		return "", err
	}

	log.Infof("Exported %d events to %s", len(result.Events), path)
	return path, nil
}

func toExportEvents(events []calendar.Event) []exportEvent {
	out := make([]exportEvent, 0, len(events))
	for _, event := range events {
		out = append(out, exportEvent{
			Subject:     event.Subject,
			Start:       event.Start,
			End:         event.End,
			Location:    event.Location,
			Organizer:   event.Organizer,
			Attendees:   event.Attendees,
			Categories:  event.Categories,
			Folder:      event.Folder,
			IsRecurring: event.IsRecurring,
			Body:        event.Body,
		})
	}
	return out
}
