package export

import (
	"fmt"
	"strings"

	"github.com/outcal/outcal/pkg/calendar_sync"
)

const (
	dayHeadingLayout = "Monday, 2 January 2006"
	clockLayout      = "15:04"
)

// MarkdownRenderer groups events by day under a single document. Events are
// expected in start order, which is how synchronization returns them.
type MarkdownRenderer struct {
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

func (r *MarkdownRenderer) Render(result calendar_sync.Result) (string, error) {
	var b strings.Builder
	b.WriteString("# Calendar events\n\n")
	fmt.Fprintf(&b, "%s, %d events\n", result.Window, len(result.Events))

	currentDay := ""
	for _, event := range result.Events {
		day := event.Start.Format(dayHeadingLayout)
		if day != currentDay {
			fmt.Fprintf(&b, "\n## %s\n", day)
			currentDay = day
		}
		fmt.Fprintf(&b, "\n**%s - %s** %s\n",
			event.Start.Format(clockLayout), event.End.Format(clockLayout), event.Subject)
		if event.Organizer != "" {
			fmt.Fprintf(&b, "Organizer: %s\n", event.Organizer)
		}
		if event.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", event.Location)
		}
		if event.Body != "" {
			fmt.Fprintf(&b, "\n%s\n", event.Body)
		}
	}
	return b.String(), nil
}
