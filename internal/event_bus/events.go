package event_bus

import "time"

const (
	// EventSyncCompleted is published after every synchronization run,
	// successful or not.
	EventSyncCompleted EventType = "sync.completed"
)

type SyncCompleted struct {
	RunID  string
	Folder string
	// Status is the run outcome as a string, one of succeeded,
	// succeeded-after-retry or failed.
	Status     string
	Attempts   int
	EventCount int
	Finished   time.Time
}
