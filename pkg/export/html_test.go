package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLRenderer_Render(t *testing.T) {
	// given
	renderer := NewHTMLRenderer()

	// when
	output, err := renderer.Render(sampleResult())

	// then
	assert.NoError(t, err)
	assert.Contains(t, output, "<!DOCTYPE html>")
	assert.Contains(t, output, "<h1>Calendar events</h1>")
	assert.Contains(t, output, "<h2>Monday, 10 March 2025</h2>")
	assert.Contains(t, output, "<h2>Tuesday, 11 March 2025</h2>")
	assert.Contains(t, output, "<strong>09:30 - 09:45</strong> Daily standup")
	assert.Contains(t, output, "Yesterday, today, blockers.")
	assert.Contains(t, output, "</html>")
}
