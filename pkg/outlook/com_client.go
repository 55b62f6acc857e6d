//go:build windows

package outlook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/outcal/outcal/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// OlDefaultFolders value for the calendar folder.
const olFolderCalendar = 9

// OlItemType value for appointment folders.
const olAppointmentItem = 1

// S_FALSE from CoInitialize means the apartment was already initialized.
const sFalse = 0x00000001

// Timestamp format Outlook accepts inside Restrict filter expressions.
const restrictTimeLayout = "01/02/2006 15:04 PM"

var errMissingDates = fmt.Errorf("event has no start or end time")

// ComClient talks to the local Outlook instance over its COM automation
// interface. COM objects are apartment bound, so the client is not safe for
// concurrent use and must be closed on the goroutine that created it.
type ComClient struct {
	app       *ole.IDispatch
	namespace *ole.IDispatch
}

// NewComClient attaches to the running Outlook instance and opens the MAPI
// namespace.
func NewComClient() (*ComClient, error) {
	if err := ole.CoInitialize(0); err != nil {
		oleErr, ok := err.(*ole.OleError)
		if !ok || oleErr.Code() != sFalse {
			return nil, fmt.Errorf("failed to initialize COM runtime: %w", err)
		}
	}
	unknown, err := oleutil.CreateObject("Outlook.Application")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	nsVar, err := oleutil.CallMethod(app, "GetNamespace", "MAPI")
	if err != nil {
		app.Release()
		return nil, fmt.Errorf("%w: failed to open MAPI namespace: %v", ErrUnreachable, err)
	}
	return &ComClient{app: app, namespace: nsVar.ToIDispatch()}, nil
}

func (c *ComClient) Close() {
	if c.namespace != nil {
		c.namespace.Release()
	}
	if c.app != nil {
		c.app.Release()
	}
	ole.CoUninitialize()
}

// Folders returns the default calendar, its sibling appointment folders in
// the same store and any sub-calendars nested under it.
func (c *ComClient) Folders(ctx context.Context) ([]Folder, error) {
	defaultFolder, err := c.defaultCalendar()
	if err != nil {
		return nil, err
	}
	defer defaultFolder.Release()

	info, err := folderInfo(defaultFolder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read default calendar: %w", err)
	}
	folders := []Folder{info}

	if parentVar, err := oleutil.GetProperty(defaultFolder, "Parent"); err == nil {
		if parent := parentVar.ToIDispatch(); parent != nil {
			siblings, err := appointmentSubfolders(ctx, parent, info.EntryID)
			parent.Release()
			if err != nil {
				return folders, err
			}
			folders = append(folders, siblings...)
		}
	}
	subs, err := appointmentSubfolders(ctx, defaultFolder, info.EntryID)
	if err != nil {
		return folders, err
	}
	return append(folders, subs...), nil
}

// Events enumerates the folder's items with recurrences expanded, restricted
// to starts inside the window and sorted by start time. Items that cannot be
// read are skipped and reported through an *IncompleteError alongside
// whatever was collected.
func (c *ComClient) Events(ctx context.Context, folder Folder, window calendar.Window) ([]calendar.Event, error) {
	folderVar, err := oleutil.CallMethod(c.namespace, "GetFolderFromID", folder.EntryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFolderNotFound, folder.Name)
	}
	folderDisp := folderVar.ToIDispatch()
	defer folderDisp.Release()

	itemsVar, err := oleutil.GetProperty(folderDisp, "Items")
	if err != nil {
		return nil, fmt.Errorf("failed to open items of folder %q: %w", folder.Name, err)
	}
	items := itemsVar.ToIDispatch()
	defer items.Release()

	if _, err := oleutil.CallMethod(items, "Sort", "[Start]"); err != nil {
		return nil, fmt.Errorf("failed to sort items by start time: %w", err)
	}
	if _, err := oleutil.PutProperty(items, "IncludeRecurrences", true); err != nil {
		return nil, fmt.Errorf("failed to enable recurrence expansion: %w", err)
	}

	restriction := fmt.Sprintf("[Start] >= '%s' AND [Start] < '%s'",
		window.Start.Format(restrictTimeLayout), window.End.Format(restrictTimeLayout))
	log.Debugf("restricting calendar items: %s", restriction)
	restrictedVar, err := oleutil.CallMethod(items, "Restrict", restriction)
	if err != nil {
		return nil, fmt.Errorf("failed to restrict items to window %s: %w", window, err)
	}
	restricted := restrictedVar.ToIDispatch()
	defer restricted.Release()

	var events []calendar.Event
	missing := 0
	itemVar, err := oleutil.CallMethod(restricted, "GetFirst")
	if err != nil {
		return nil, fmt.Errorf("failed to read first calendar item: %w", err)
	}
	for {
		item := itemVar.ToIDispatch()
		if item == nil {
			break
		}
		if err := ctx.Err(); err != nil {
			item.Release()
			return events, err
		}
		event, err := itemToEvent(item)
		item.Release()
		switch {
		case err == nil:
			events = append(events, event)
		case errors.Is(err, errMissingDates):
			log.Warnf("skipping event with missing dates: %v", err)
		default:
			missing++
			log.Warnf("failed to read calendar item: %v", err)
		}
		itemVar, err = oleutil.CallMethod(restricted, "GetNext")
		if err != nil {
			missing++
			log.Warnf("failed to advance to next calendar item: %v", err)
			break
		}
	}
	if missing > 0 {
		return events, &IncompleteError{Events: events, Missing: missing}
	}
	return events, nil
}

// Resync starts every configured send/receive group. Outlook runs them in
// the background; there is no way to observe their completion from here.
func (c *ComClient) Resync(ctx context.Context, folder Folder) error {
	syncVar, err := oleutil.GetProperty(c.namespace, "SyncObjects")
	if err != nil {
		return fmt.Errorf("failed to access send/receive groups: %w", err)
	}
	syncObjects := syncVar.ToIDispatch()
	defer syncObjects.Release()

	count, err := getIntProp(syncObjects, "Count")
	if err != nil {
		return fmt.Errorf("failed to count send/receive groups: %w", err)
	}
	log.Debugf("starting %d send/receive groups for folder %q", count, folder.Name)
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		groupVar, err := oleutil.CallMethod(syncObjects, "Item", i)
		if err != nil {
			return fmt.Errorf("failed to access send/receive group %d: %w", i, err)
		}
		group := groupVar.ToIDispatch()
		_, err = oleutil.CallMethod(group, "Start")
		group.Release()
		if err != nil {
			return fmt.Errorf("failed to start send/receive group %d: %w", i, err)
		}
	}
	return nil
}

func (c *ComClient) defaultCalendar() (*ole.IDispatch, error) {
	folderVar, err := oleutil.CallMethod(c.namespace, "GetDefaultFolder", olFolderCalendar)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open default calendar: %v", ErrUnreachable, err)
	}
	return folderVar.ToIDispatch(), nil
}

func itemToEvent(item *ole.IDispatch) (calendar.Event, error) {
	subject, err := getStringProp(item, "Subject")
	if err != nil {
		return calendar.Event{}, err
	}
	if subject == "" {
		subject = "Untitled Event"
	}
	start, err := getTimeProp(item, "Start")
	if err != nil {
		return calendar.Event{}, err
	}
	end, err := getTimeProp(item, "End")
	if err != nil {
		return calendar.Event{}, err
	}
	if start.IsZero() || end.IsZero() {
		return calendar.Event{}, fmt.Errorf("%w: %s", errMissingDates, subject)
	}

	entryID, _ := getStringProp(item, "EntryID")
	location, _ := getStringProp(item, "Location")
	body, _ := getStringProp(item, "Body")
	categories, _ := getStringProp(item, "Categories")
	organizer, _ := getStringProp(item, "Organizer")
	required, _ := getStringProp(item, "RequiredAttendees")
	optional, _ := getStringProp(item, "OptionalAttendees")
	recurring, _ := getBoolProp(item, "IsRecurring")

	return calendar.Event{
		EntryID:     entryID,
		Subject:     subject,
		Start:       start,
		End:         end,
		Location:    location,
		Body:        body,
		Organizer:   organizer,
		Attendees:   append(splitNames(required), splitNames(optional)...),
		Categories:  splitCategories(categories),
		IsRecurring: recurring,
	}, nil
}

func folderInfo(disp *ole.IDispatch, isDefault bool) (Folder, error) {
	entryID, err := getStringProp(disp, "EntryID")
	if err != nil {
		return Folder{}, err
	}
	name, err := getStringProp(disp, "Name")
	if err != nil {
		return Folder{}, err
	}
	count := 0
	if itemsVar, err := oleutil.GetProperty(disp, "Items"); err == nil {
		items := itemsVar.ToIDispatch()
		if c, err := getIntProp(items, "Count"); err == nil {
			count = c
		}
		items.Release()
	}
	return Folder{EntryID: entryID, Name: name, IsDefault: isDefault, ItemCount: count}, nil
}

func appointmentSubfolders(ctx context.Context, parent *ole.IDispatch, excludeID string) ([]Folder, error) {
	foldersVar, err := oleutil.GetProperty(parent, "Folders")
	if err != nil {
		return nil, fmt.Errorf("failed to list subfolders: %w", err)
	}
	folders := foldersVar.ToIDispatch()
	defer folders.Release()

	count, err := getIntProp(folders, "Count")
	if err != nil {
		return nil, fmt.Errorf("failed to count subfolders: %w", err)
	}
	var result []Folder
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		itemVar, err := oleutil.CallMethod(folders, "Item", i)
		if err != nil {
			log.Warnf("failed to access subfolder %d: %v", i, err)
			continue
		}
		sub := itemVar.ToIDispatch()
		itemType, err := getIntProp(sub, "DefaultItemType")
		if err != nil || itemType != olAppointmentItem {
			sub.Release()
			continue
		}
		info, err := folderInfo(sub, false)
		sub.Release()
		if err != nil {
			log.Warnf("failed to read subfolder %d: %v", i, err)
			continue
		}
		if info.EntryID == excludeID {
			continue
		}
		result = append(result, info)
	}
	return result, nil
}

func getStringProp(disp *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer v.Clear()
	return v.ToString(), nil
}

func getTimeProp(disp *ole.IDispatch, name string) (time.Time, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer v.Clear()
	t, ok := v.Value().(time.Time)
	if !ok {
		return time.Time{}, nil
	}
	return t, nil
}

func getBoolProp(disp *ole.IDispatch, name string) (bool, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer v.Clear()
	b, ok := v.Value().(bool)
	if !ok {
		return false, nil
	}
	return b, nil
}

func getIntProp(disp *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer v.Clear()
	return int(v.Val), nil
}

// Attendee lists come back as semicolon separated display names, which may
// themselves contain commas.
func splitNames(s string) []string {
	return splitAndTrim(s, func(r rune) bool { return r == ';' })
}

// Category lists are comma separated, semicolons appear in some locales.
func splitCategories(s string) []string {
	return splitAndTrim(s, func(r rune) bool { return r == ',' || r == ';' })
}

func splitAndTrim(s string, isSep func(rune) bool) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, isSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
