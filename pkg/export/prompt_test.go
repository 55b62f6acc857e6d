package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptGenerator_Generate(t *testing.T) {
	// given
	generator := NewPromptGenerator("")

	// when
	prompt, err := generator.Generate(sampleResult())

	// then
	assert.NoError(t, err)
	assert.Contains(t, prompt, "# Calendar Event Analysis")
	assert.Contains(t, prompt, "```json")
	assert.Contains(t, prompt, `"subject": "Daily standup"`)
	assert.Contains(t, prompt, "What insights can you provide based on this calendar data?")
	assert.NotContains(t, prompt, "{events}")
}

func TestPromptGenerator_CustomTemplate(t *testing.T) {
	// given
	generator := NewPromptGenerator("Summarize my meetings:\n{events}\n")

	// when
	prompt, err := generator.Generate(sampleResult())

	// then
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "Summarize my meetings:\n["))
	assert.Contains(t, prompt, `"subject": "Quarterly planning"`)
}

func TestPromptGenerator_TemplateWithoutPlaceholder(t *testing.T) {
	// given
	generator := NewPromptGenerator("this template forgot the placeholder")

	// when
	_, err := generator.Generate(sampleResult())

	// then
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "{events}")
}
