package stats

import "time"

// Summary aggregates meeting time over one set of calendar events.
type Summary struct {
	TotalMeetings int
	TotalTime     time.Duration
	AverageTime   time.Duration
	// BusiestDay is the weekday carrying the most meeting time, empty when
	// there are no events.
	BusiestDay   string
	PerWeekday   []WeekdayStats
	PerOrganizer []OrganizerStats
	Timeline     []TimelineEntry
}

// WeekdayStats is one row of the Monday-first weekday breakdown. All seven
// weekdays are always present.
type WeekdayStats struct {
	Weekday  string
	Meetings int
	Duration time.Duration
}

type OrganizerStats struct {
	Organizer string
	Meetings  int
	Duration  time.Duration
}

type TimelineEntry struct {
	Subject  string
	Start    time.Time
	End      time.Time
	Duration time.Duration
}
