package outlook

import (
	"context"
	"fmt"

	"github.com/outcal/outcal/pkg/calendar"
)

var (
	ErrUnreachable    = fmt.Errorf("outlook is not running or cannot be reached")
	ErrFolderNotFound = fmt.Errorf("calendar folder not found")
)

// IncompleteError reports an enumeration that finished without materializing
// every item in the window. Events holds what was read; callers must not
// discard it.
type IncompleteError struct {
	Events  []calendar.Event
	Missing int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete calendar read: %d items could not be read", e.Missing)
}

// Folder is a calendar folder exposed by the client.
type Folder struct {
	EntryID   string
	Name      string
	IsDefault bool
	ItemCount int
}

// Client is the boundary to the local Outlook instance. Implementations may
// return partial events together with an *IncompleteError from Events; the
// partial slice is meaningful and must be kept.
type Client interface {
	// Folders enumerates the calendar folders of the default store.
	Folders(ctx context.Context) ([]Folder, error)
	// Events enumerates events whose start falls inside the window,
	// ordered by start time, with recurrences expanded.
	Events(ctx context.Context, folder Folder, window calendar.Window) ([]calendar.Event, error)
	// Resync asks the client for a deeper resynchronization of its local
	// store. Best effort; the client's consistency state is opaque.
	Resync(ctx context.Context, folder Folder) error
}

// FindFolder resolves a folder by display name, or the default calendar when
// name is empty. A name that matches no folder is an ErrFolderNotFound.
func FindFolder(ctx context.Context, client Client, name string) (Folder, error) {
	folders, err := client.Folders(ctx)
	if err != nil {
		return Folder{}, fmt.Errorf("failed to list calendar folders: %w", err)
	}
	if name == "" {
		for _, f := range folders {
			if f.IsDefault {
				return f, nil
			}
		}
		return Folder{}, fmt.Errorf("%w: no default calendar", ErrFolderNotFound)
	}
	for _, f := range folders {
		if f.Name == name {
			return f, nil
		}
	}
	return Folder{}, fmt.Errorf("%w: %q", ErrFolderNotFound, name)
}
