package calendar_sync

import (
	"time"

	"github.com/outcal/outcal/pkg/calendar"
)

type Status string

const (
	StatusSucceeded           Status = "succeeded"
	StatusSucceededAfterRetry Status = "succeeded-after-retry"
	StatusFailed              Status = "failed"
)

// Request describes a single synchronization run. The caller owns the
// semantics of the bounds; values are only validated for non-negativity.
type Request struct {
	DaysBack    int
	DaysForward int
	// Folder selects a calendar folder by display name. Empty means the
	// default calendar.
	Folder string
	// Timeout bounds each read attempt. Zero or negative means no bound.
	Timeout time.Duration
	// Retries is the number of additional attempts after the first one.
	Retries int
	// FullSync requests one deeper client resynchronization before the
	// first read attempt.
	FullSync bool
}

// Result is the outcome of a run. On a failed run Events still holds the
// latest partial collection, which is never discarded.
type Result struct {
	RunID    string
	Folder   string
	Window   calendar.Window
	Events   []calendar.Event
	Status   Status
	Attempts int
	Started  time.Time
	Finished time.Time
	LastErr  string
}

// BodyCleaner strips boilerplate from event bodies before they land in a
// Result.
type BodyCleaner interface {
	Clean(body string) string
}
