package editor

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
)

const (
	MsgEventTitle    = "Please enter an event title"
	MsgEventCalendar = "Please select a calendar"
	MsgEventOrder    = "End time must be after start time"
	MsgEventDateTime = "Please enter dates as YYYY-MM-DD and times as HH:MM"
	MsgEventSave     = "Failed to save event"
	MsgEventDelete   = "Failed to delete event"
)

// EventActions is what the event form needs from the state store.
type EventActions interface {
	AddEvent(ctx context.Context, data calendar.CreateEventData) (calendar.Event, error)
	UpdateEvent(ctx context.Context, e calendar.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// EventFormOptions seed a new EventForm.
type EventFormOptions struct {
	// Event is edited when set; otherwise the form creates.
	Event *calendar.Event
	// InitialDate defaults to Now.
	InitialDate time.Time
	// InitialHour, when set, moves the start to that hour on the hour.
	InitialHour *int
	Now         time.Time
}

// EventForm is the editable copy of an event. Dates and times are held as
// the strings the user types and resolved on validate.
type EventForm struct {
	ID          string
	Title       string
	Description string
	Location    string
	CalendarID  string
	IsAllDay    bool
	Reminder    *int

	StartDate string
	StartTime string
	EndDate   string
	EndTime   string

	original *calendar.Event
}

// NewEventForm seeds a form from opts. A new event goes on the default
// calendar, or the first one, and lasts one hour.
func NewEventForm(s calendar.State, opts EventFormOptions) *EventForm {
	if opts.Event != nil {
		ev := *opts.Event
		f := &EventForm{
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			Location:    ev.Location,
			CalendarID:  ev.CalendarID,
			IsAllDay:    ev.IsAllDay,
			Reminder:    ev.Reminder,
			original:    &ev,
		}
		f.setTimes(ev.Start(), ev.End())
		return f
	}

	start := opts.InitialDate
	if start.IsZero() {
		start = opts.Now
	}
	if start.IsZero() {
		start = time.Now()
	}
	if opts.InitialHour != nil {
		start = time.Date(start.Year(), start.Month(), start.Day(), *opts.InitialHour, 0, 0, 0, start.Location())
	}
	f := &EventForm{}
	if def, ok := s.DefaultCalendar(); ok {
		f.CalendarID = def.ID
	}
	f.setTimes(start, start.Add(time.Hour))
	return f
}

func (f *EventForm) setTimes(start, end time.Time) {
	f.StartDate = dateutil.FormatDate(start)
	f.StartTime = dateutil.FormatTime(start)
	f.EndDate = dateutil.FormatDate(end)
	f.EndTime = dateutil.FormatTime(end)
}

// IsEdit reports whether the form edits an existing event.
func (f *EventForm) IsEdit() bool { return f.original != nil }

// Heading is the form title.
func (f *EventForm) Heading() string {
	if f.IsEdit() {
		return "Edit Event"
	}
	return "New Event"
}

// SetAllDay toggles the all-day flag.
func (f *EventForm) SetAllDay(v bool) { f.IsAllDay = v }

// Resolve turns the date and time strings into instants. All-day events
// span from the start of the start day to the last millisecond of the end
// day.
func (f *EventForm) Resolve() (start, end time.Time, err error) {
	startDay, err := dateutil.ParseDate(f.StartDate)
	if err != nil {
		return start, end, invalid(ErrInvalidDateTime, MsgEventDateTime)
	}
	endDay, err := dateutil.ParseDate(f.EndDate)
	if err != nil {
		return start, end, invalid(ErrInvalidDateTime, MsgEventDateTime)
	}
	if f.IsAllDay {
		start = dateutil.DayStart(startDay)
		end = time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, int(999*time.Millisecond), endDay.Location())
		return start, end, nil
	}
	if start, err = dateutil.DateFromTimeString(startDay, f.StartTime); err != nil {
		return start, end, invalid(ErrInvalidDateTime, MsgEventDateTime)
	}
	if end, err = dateutil.DateFromTimeString(endDay, f.EndTime); err != nil {
		return start, end, invalid(ErrInvalidDateTime, MsgEventDateTime)
	}
	return start, end, nil
}

// Validate checks title, calendar and ordering, in that order.
func (f *EventForm) Validate(s calendar.State) error {
	if strings.TrimSpace(f.Title) == "" {
		return invalid(ErrTitleRequired, MsgEventTitle)
	}
	if f.CalendarID == "" {
		return invalid(ErrCalendarRequired, MsgEventCalendar)
	}
	if _, ok := s.FindCalendar(f.CalendarID); !ok {
		return invalid(ErrCalendarRequired, MsgEventCalendar)
	}
	start, end, err := f.Resolve()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return invalid(ErrEndBeforeStart, MsgEventOrder)
	}
	return nil
}

// Save validates and then creates or updates the event.
func (f *EventForm) Save(ctx context.Context, s calendar.State, actions EventActions) (calendar.Event, error) {
	if err := f.Validate(s); err != nil {
		return calendar.Event{}, err
	}
	start, end, _ := f.Resolve()

	if f.original != nil {
		ev := *f.original
		ev.Title = f.Title
		ev.Description = f.Description
		ev.Location = f.Location
		ev.CalendarID = f.CalendarID
		ev.IsAllDay = f.IsAllDay
		ev.Reminder = f.Reminder
		ev.StartDate = calendar.Timestamp{Time: start}
		ev.EndDate = calendar.Timestamp{Time: end}
		if err := actions.UpdateEvent(ctx, ev); err != nil {
			return calendar.Event{}, &SaveError{Message: MsgEventSave, Err: err}
		}
		return ev, nil
	}

	ev, err := actions.AddEvent(ctx, calendar.CreateEventData{
		Title:       f.Title,
		Description: f.Description,
		StartDate:   start,
		EndDate:     end,
		IsAllDay:    f.IsAllDay,
		CalendarID:  f.CalendarID,
		Location:    f.Location,
		Reminder:    f.Reminder,
	})
	if err != nil {
		return calendar.Event{}, &SaveError{Message: MsgEventSave, Err: err}
	}
	return ev, nil
}

// Delete removes the edited event after confirmation. It does nothing on a
// create form.
func (f *EventForm) Delete(ctx context.Context, actions EventActions, c Confirmer) error {
	if f.original == nil {
		return nil
	}
	if err := confirm(c, "Delete Event", "Are you sure you want to delete this event?"); err != nil {
		return err
	}
	if err := actions.DeleteEvent(ctx, f.original.ID); err != nil {
		return &SaveError{Message: MsgEventDelete, Err: err}
	}
	return nil
}
