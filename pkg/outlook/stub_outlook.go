package outlook

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/outcal/outcal/pkg/calendar"
)

// StubClient is an in-memory Client. Failures can be queued per call, which
// makes the retry behaviour of callers scriptable.
type StubClient struct {
	folders     []Folder
	events      map[string][]calendar.Event
	eventsErrs  []error
	foldersErr  error
	resyncErr   error
	eventsCalls int
	resyncCalls int
}

func NewStubClient() *StubClient {
	return &StubClient{events: map[string][]calendar.Event{}}
}

func (c *StubClient) AddFolder(name string, isDefault bool) Folder {
	folder := Folder{EntryID: uuid.NewString(), Name: name, IsDefault: isDefault}
	c.folders = append(c.folders, folder)
	return folder
}

func (c *StubClient) AddEvent(folder Folder, event calendar.Event) {
	if event.EntryID == "" {
		event.EntryID = uuid.NewString()
	}
	c.events[folder.EntryID] = append(c.events[folder.EntryID], event)
	for i, f := range c.folders {
		if f.EntryID == folder.EntryID {
			c.folders[i].ItemCount++
		}
	}
}

// FailEventsWith queues errors for upcoming Events calls, one per call. A
// queued *IncompleteError also delivers its partial events. Once the queue
// is drained, calls succeed again.
func (c *StubClient) FailEventsWith(errs ...error) {
	c.eventsErrs = append(c.eventsErrs, errs...)
}

func (c *StubClient) FailFoldersWith(err error) {
	c.foldersErr = err
}

func (c *StubClient) FailResyncWith(err error) {
	c.resyncErr = err
}

func (c *StubClient) EventsCalls() int {
	return c.eventsCalls
}

func (c *StubClient) ResyncCalls() int {
	return c.resyncCalls
}

func (c *StubClient) Folders(ctx context.Context) ([]Folder, error) {
	if c.foldersErr != nil {
		return nil, c.foldersErr
	}
	folders := make([]Folder, len(c.folders))
	copy(folders, c.folders)
	return folders, nil
}

func (c *StubClient) Events(ctx context.Context, folder Folder, window calendar.Window) ([]calendar.Event, error) {
	c.eventsCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.eventsErrs) > 0 {
		err := c.eventsErrs[0]
		c.eventsErrs = c.eventsErrs[1:]
		if incomplete, ok := err.(*IncompleteError); ok {
			return incomplete.Events, incomplete
		}
		return nil, err
	}
	var events []calendar.Event
	for _, event := range c.events[folder.EntryID] {
		if window.Contains(event.Start) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

func (c *StubClient) Resync(ctx context.Context, folder Folder) error {
	c.resyncCalls++
	return c.resyncErr
}

func (c *StubClient) Cleanup() {
	c.folders = nil
	c.events = map[string][]calendar.Event{}
	c.eventsErrs = nil
	c.foldersErr = nil
	c.resyncErr = nil
	c.eventsCalls = 0
	c.resyncCalls = 0
}

// NewDemoClient builds a stub seeded with sample meetings around the given
// reference time, for running without a local Outlook.
func NewDemoClient(now time.Time) *StubClient {
	client := NewStubClient()
	main := client.AddFolder("Calendar", true)
	team := client.AddFolder("Team Events", false)

	day := func(offset int, hour, minute int) time.Time {
		d := now.AddDate(0, 0, offset)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location())
	}

	client.AddEvent(main, calendar.Event{
		Subject:   "Sprint retrospective",
		Start:     day(-1, 15, 0),
		End:       day(-1, 16, 0),
		Location:  "Microsoft Teams Meeting",
		Organizer: "Dana Kowalska",
		Attendees: []string{"Dana Kowalska", "Priya Nair", "Tom Becker"},
		Body: "What went well, what didn't, action items.\n\n" +
			"________________________________________________________________________________\n" +
			"Microsoft Teams meeting\n" +
			"Click here to join the meeting\n" +
			"Need help? <https://aka.ms/JoinTeamsMeeting?omkt=en-US>\n",
	})
	client.AddEvent(main, calendar.Event{
		Subject:     "Daily standup",
		Start:       day(0, 9, 30),
		End:         day(0, 9, 45),
		Organizer:   "Priya Nair",
		Attendees:   []string{"Priya Nair", "Dana Kowalska", "Tom Becker"},
		IsRecurring: true,
		Body:        "Yesterday, today, blockers.",
	})
	client.AddEvent(main, calendar.Event{
		Subject:    "Focus time",
		Start:      day(0, 13, 0),
		End:        day(0, 15, 0),
		Categories: []string{"Focus"},
	})
	client.AddEvent(main, calendar.Event{
		Subject:    "Out of office",
		Start:      day(1, 9, 0),
		End:        day(1, 17, 0),
		Categories: []string{"OOO"},
	})
	client.AddEvent(team, calendar.Event{
		Subject:   "Quarterly planning",
		Start:     day(1, 10, 0),
		End:       day(1, 12, 0),
		Location:  "Room 4.12",
		Organizer: "Tom Becker",
		Attendees: []string{"Tom Becker", "Dana Kowalska"},
		Body:      "Bring your roadmap drafts.",
	})
	return client
}
