package calendar

import (
	"strings"
	"time"
)

// Event is a single calendar entry as read from the external client.
// Events are immutable once a fetch has produced them.
type Event struct {
	EntryID     string
	Subject     string
	Start       time.Time
	End         time.Time
	Location    string
	Body        string
	Organizer   string
	Attendees   []string
	Categories  []string
	Folder      string
	IsRecurring bool
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// HasCategory reports whether the event carries the given category,
// ignoring case and surrounding whitespace.
func (e Event) HasCategory(name string) bool {
	for _, c := range e.Categories {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
