package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/outcal/outcal/pkg/calendar_sync"
)

// DefaultPromptTemplate is used when no custom template is configured. The
// {events} placeholder is replaced with the events as indented JSON.
const DefaultPromptTemplate = `# Calendar Event Analysis
Below is a JSON representation of my calendar events. Please analyze this data and provide insights about:
1. How I'm spending my time
2. Patterns in my meetings and appointments
3. Suggestions for improving my calendar management

Calendar Events:
` + "```json\n{events}\n```" + `
What insights can you provide based on this calendar data?`

// PromptGenerator builds a language model prompt from a run result.
type PromptGenerator struct {
	template string
}

func NewPromptGenerator(template string) *PromptGenerator {
	if strings.TrimSpace(template) == "" {
		template = DefaultPromptTemplate
	}
	return &PromptGenerator{template: template}
}

func (g *PromptGenerator) Generate(result calendar_sync.Result) (string, error) {
	if !strings.Contains(g.template, "{events}") {
		return "", fmt.Errorf("prompt template is missing the {events} placeholder")
	}

	events, err := json.MarshalIndent(toExportEvents(result.Events), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode events to JSON: %w", err)
	}
	return strings.ReplaceAll(g.template, "{events}", string(events)), nil
}
