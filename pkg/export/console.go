package export

import (
	"fmt"
	"strings"

	"github.com/outcal/outcal/pkg/calendar_sync"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// ConsoleRenderer prints events as a numbered list for terminal output.
type ConsoleRenderer struct {
}

func NewConsoleRenderer() *ConsoleRenderer {
	return &ConsoleRenderer{}
}

func (r *ConsoleRenderer) Render(result calendar_sync.Result) (string, error) {
	if len(result.Events) == 0 {
		return "No events found\n", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d calendar events:\n", len(result.Events))
	for i, event := range result.Events {
		fmt.Fprintf(&b, "\n--- Event %d ---\n", i+1)
		fmt.Fprintf(&b, "Subject: %s\n", event.Subject)
		fmt.Fprintf(&b, "Start: %s\n", event.Start.Format(displayTimeLayout))
		fmt.Fprintf(&b, "End: %s\n", event.End.Format(displayTimeLayout))
		fmt.Fprintf(&b, "Location: %s\n", event.Location)
		if event.Organizer != "" {
			fmt.Fprintf(&b, "Organizer: %s\n", event.Organizer)
		}
		fmt.Fprintf(&b, "Body: %s\n", event.Body)
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(event.Categories, ", "))
	}
	return b.String(), nil
}
