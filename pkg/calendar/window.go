package calendar

import (
	"fmt"
	"time"

	"github.com/outcal/outcal/internal/utils"
)

// Window is a half-open interval [Start, End) of event start times.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowAround builds the fetch window for a reference time: from midnight
// of the day daysBack days before it up to (excluding) midnight of the day
// daysForward days after it.
func WindowAround(now time.Time, daysBack int, daysForward int) Window {
	midnight := utils.StartOfDay(now)
	return Window{
		Start: midnight.AddDate(0, 0, -daysBack),
		End:   midnight.AddDate(0, 0, daysForward),
	}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}
