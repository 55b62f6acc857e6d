package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outcal/outcal/pkg/calendar_sync"
)

func TestConsoleRenderer_Render(t *testing.T) {
	// given
	renderer := NewConsoleRenderer()

	// when
	output, err := renderer.Render(sampleResult())

	// then
	assert.NoError(t, err)
	want := "Found 2 calendar events:\n" +
		"\n--- Event 1 ---\n" +
		"Subject: Daily standup\n" +
		"Start: 2025-03-10 09:30:00\n" +
		"End: 2025-03-10 09:45:00\n" +
		"Location: Microsoft Teams Meeting\n" +
		"Organizer: Priya Nair\n" +
		"Body: Yesterday, today, blockers.\n" +
		"Categories: Team\n" +
		"\n--- Event 2 ---\n" +
		"Subject: Quarterly planning\n" +
		"Start: 2025-03-11 10:00:00\n" +
		"End: 2025-03-11 12:00:00\n" +
		"Location: Room 4.12\n" +
		"Body: \n" +
		"Categories: \n"
	assert.Equal(t, want, output)
}

func TestConsoleRenderer_RenderNoEvents(t *testing.T) {
	// given
	renderer := NewConsoleRenderer()

	// when
	output, err := renderer.Render(calendar_sync.Result{})

	// then
	assert.NoError(t, err)
	assert.Equal(t, "No events found\n", output)
}
