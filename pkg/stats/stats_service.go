package stats

import (
	"sort"
	"time"

	"github.com/outcal/outcal/pkg/calendar"
)

// Organizer rows beyond this are folded away, matching what fits on the
// dashboard chart.
const topOrganizers = 10

type StatsService interface {
	Summarize(events []calendar.Event) Summary
}

type StatsServiceImpl struct {
}

func NewStatsServiceImpl() *StatsServiceImpl {
	return &StatsServiceImpl{}
}

func (s *StatsServiceImpl) Summarize(events []calendar.Event) Summary {
	summary := Summary{
		TotalMeetings: len(events),
		PerWeekday:    emptyWeekdays(),
	}

	byWeekday := map[string]*WeekdayStats{}
	for i := range summary.PerWeekday {
		byWeekday[summary.PerWeekday[i].Weekday] = &summary.PerWeekday[i]
	}
	byOrganizer := map[string]*OrganizerStats{}

	for _, event := range events {
		duration := event.Duration()
		summary.TotalTime += duration

		day := byWeekday[event.Start.Weekday().String()]
		day.Meetings++
		day.Duration += duration

		organizer := event.Organizer
		if organizer == "" {
			organizer = "Unknown"
		}
		row, ok := byOrganizer[organizer]
		if !ok {
			row = &OrganizerStats{Organizer: organizer}
			byOrganizer[organizer] = row
		}
		row.Meetings++
		row.Duration += duration

		summary.Timeline = append(summary.Timeline, TimelineEntry{
			Subject:  event.Subject,
			Start:    event.Start,
			End:      event.End,
			Duration: duration,
		})
	}

	if len(events) > 0 {
		summary.AverageTime = summary.TotalTime / time.Duration(len(events))
		summary.BusiestDay = busiestDay(summary.PerWeekday)
	}
	summary.PerOrganizer = topOrganizerRows(byOrganizer)
	sort.SliceStable(summary.Timeline, func(i, j int) bool {
		return summary.Timeline[i].Start.Before(summary.Timeline[j].Start)
	})
	return summary
}

func emptyWeekdays() []WeekdayStats {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	rows := make([]WeekdayStats, len(order))
	for i, day := range order {
		rows[i] = WeekdayStats{Weekday: day.String()}
	}
	return rows
}

// busiestDay returns the first weekday with the highest total duration in
// Monday-first order.
func busiestDay(rows []WeekdayStats) string {
	best := ""
	bestDuration := time.Duration(-1)
	for _, row := range rows {
		if row.Duration > bestDuration {
			best = row.Weekday
			bestDuration = row.Duration
		}
	}
	return best
}

func topOrganizerRows(byOrganizer map[string]*OrganizerStats) []OrganizerStats {
	rows := make([]OrganizerStats, 0, len(byOrganizer))
	for _, row := range byOrganizer {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Duration != rows[j].Duration {
			return rows[i].Duration > rows[j].Duration
		}
		return rows[i].Organizer < rows[j].Organizer
	})
	if len(rows) > topOrganizers {
		rows = rows[:topOrganizers]
	}
	return rows
}
