package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// StatsRenderer renders a meeting summary into a flat text format.
type StatsRenderer interface {
	RenderStats(summary Summary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsTransformer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderStats(summary Summary) (string, error) {

	data := make([][]string, 0, len(summary.PerWeekday)+len(summary.PerOrganizer)+5)
	data = append(data, []string{"Weekday", "Meetings", "Duration"})
	for _, weekday := range summary.PerWeekday {
		data = append(data, []string{
			weekday.Weekday,
			strconv.Itoa(weekday.Meetings),
			durationToString(weekday.Duration),
		})
	}
	data = append(data, []string{"TOTAL", strconv.Itoa(summary.TotalMeetings), durationToString(summary.TotalTime)})
	data = append(data, []string{"AVERAGE", "", durationToString(summary.AverageTime)})

	if len(summary.PerOrganizer) > 0 {
		data = append(data, []string{""})
		data = append(data, []string{"Organizer", "Meetings", "Duration"})
		for _, organizer := range summary.PerOrganizer {
			data = append(data, []string{
				organizer.Organizer,
				strconv.Itoa(organizer.Meetings),
				durationToString(organizer.Duration),
			})
		}
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func durationToString(duration time.Duration) string {
	hours := strconv.Itoa(int(duration.Hours()))
	if len(hours) == 1 {
		hours = "0" + hours
	}
	minutes := strconv.Itoa(int(duration.Minutes()) % 60)
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	seconds := strconv.Itoa(int(duration.Seconds()) % 60)
	if len(seconds) == 1 {
		seconds = "0" + seconds
	}
	return hours + ":" + minutes + ":" + seconds
}
