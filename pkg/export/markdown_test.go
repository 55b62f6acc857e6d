package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	// given
	renderer := NewMarkdownRenderer()

	// when
	output, err := renderer.Render(sampleResult())

	// then
	assert.NoError(t, err)
	want := "# Calendar events\n" +
		"\n" +
		"2025-03-10 to 2025-03-12, 2 events\n" +
		"\n## Monday, 10 March 2025\n" +
		"\n**09:30 - 09:45** Daily standup\n" +
		"Organizer: Priya Nair\n" +
		"Location: Microsoft Teams Meeting\n" +
		"\nYesterday, today, blockers.\n" +
		"\n## Tuesday, 11 March 2025\n" +
		"\n**10:00 - 12:00** Quarterly planning\n" +
		"Location: Room 4.12\n"
	assert.Equal(t, want, output)
}

func TestMarkdownRenderer_GroupsSameDayEvents(t *testing.T) {
	// given
	renderer := NewMarkdownRenderer()
	result := sampleResult()
	result.Events[1].Start = result.Events[0].Start.Add(2 * time.Hour)
	result.Events[1].End = result.Events[0].Start.Add(3 * time.Hour)

	// when
	output, err := renderer.Render(result)

	// then
	assert.NoError(t, err)
	assert.Equal(t, 1, strings.Count(output, "## Monday, 10 March 2025"))
	assert.NotContains(t, output, "## Tuesday")
}
