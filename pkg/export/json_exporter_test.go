package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/outcal/outcal/internal/utils"
)

var exportNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestJSONExporter_Payload(t *testing.T) {
	// given
	exporter := NewJSONExporter(t.TempDir(), &utils.MockClock{FixedNow: exportNow})

	// when
	payload, err := exporter.Payload(sampleResult())

	// then
	assert.NoError(t, err)

	var doc struct {
		Metadata struct {
			ExportedAt  time.Time `json:"exported_at"`
			RunID       string    `json:"run_id"`
			Folder      string    `json:"folder"`
			Status      string    `json:"status"`
			Attempts    int       `json:"attempts"`
			EventCount  int       `json:"event_count"`
			Description string    `json:"description"`
		} `json:"metadata"`
		Events []struct {
			Subject string    `json:"subject"`
			Start   time.Time `json:"start"`
			Body    string    `json:"body"`
		} `json:"events"`
	}
	err = json.Unmarshal(payload, &doc)
	assert.NoError(t, err)
	assert.Equal(t, exportNow, doc.Metadata.ExportedAt)
	assert.Equal(t, "run-42", doc.Metadata.RunID)
	assert.Equal(t, "Calendar", doc.Metadata.Folder)
	assert.Equal(t, "succeeded", doc.Metadata.Status)
	assert.Equal(t, 1, doc.Metadata.Attempts)
	assert.Equal(t, 2, doc.Metadata.EventCount)
	assert.Equal(t, "Calendar events exported from Outlook", doc.Metadata.Description)
	assert.Len(t, doc.Events, 2)
	assert.Equal(t, "Daily standup", doc.Events[0].Subject)
}

func TestJSONExporter_Filename(t *testing.T) {
	// given
	exporter := NewJSONExporter(t.TempDir(), &utils.MockClock{FixedNow: exportNow})

	// when
	filename := exporter.Filename()

	// then
	assert.Equal(t, "calendar_events_20250315_120000.json", filename)
}

func TestJSONExporter_Export(t *testing.T) {
	// given
	dir := t.TempDir()
	exporter := NewJSONExporter(dir, &utils.MockClock{FixedNow: exportNow})

	// when
	path, err := exporter.Export(sampleResult())

	// then
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "calendar_events_20250315_120000.json"), path)
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), `"description": "Calendar events exported from Outlook"`)
	assert.Contains(t, string(content), `"subject": "Quarterly planning"`)
}

func TestJSONExporter_ExportCreatesDirectory(t *testing.T) {
	// given
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	exporter := NewJSONExporter(dir, &utils.MockClock{FixedNow: exportNow})

	// when
	path, err := exporter.Export(sampleResult())

	// then
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
