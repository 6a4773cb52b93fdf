// Package view turns calendar state into render models for the month, week
// and day layouts. Everything here is a pure function of its inputs; taps and
// clicks are reported through Handlers and never touch the store.
package view

import (
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
)

const (
	// MonthEventsPerCell is how many events a month cell lists before "+N more".
	MonthEventsPerCell = 2

	WeekHourHeight = 60
	WeekMinHeight  = 30
	DayHourHeight  = 80
	DayMinHeight   = 40

	HoursPerDay = 24
)

// Input is what every layout renders from.
type Input struct {
	// Date overrides State.SelectedDate when set, for adjacent pager pages.
	Date  time.Time
	State calendar.State
	Now   time.Time
}

func (in Input) date() time.Time {
	if !in.Date.IsZero() {
		return in.Date
	}
	return in.State.SelectedDate
}

func (in Input) now() time.Time {
	if in.Now.IsZero() {
		return time.Now()
	}
	return in.Now
}

// Handlers are the callbacks a rendered layout reports interactions through.
type Handlers struct {
	OnEventPress      func(calendar.Event)
	OnDatePress       func(time.Time)
	OnDateNumberPress func(time.Time)
	OnTimeSlotPress   func(date time.Time, hour int)
}

// EventPress fires OnEventPress when set.
func (h Handlers) EventPress(ev calendar.Event) {
	if h.OnEventPress != nil {
		h.OnEventPress(ev)
	}
}

// DatePress fires OnDatePress when set.
func (h Handlers) DatePress(date time.Time) {
	if h.OnDatePress != nil {
		h.OnDatePress(date)
	}
}

// DateNumberPress fires OnDateNumberPress, falling back to OnDatePress.
func (h Handlers) DateNumberPress(date time.Time) {
	if h.OnDateNumberPress != nil {
		h.OnDateNumberPress(date)
		return
	}
	h.DatePress(date)
}

// TimeSlotPress fires OnTimeSlotPress when set.
func (h Handlers) TimeSlotPress(date time.Time, hour int) {
	if h.OnTimeSlotPress != nil {
		h.OnTimeSlotPress(date, hour)
	}
}

// EventItem is an event decorated with its display color.
type EventItem struct {
	Event calendar.Event
	Color string
}

// TimedItem is a timed event placed on an hour axis.
type TimedItem struct {
	EventItem
	dateutil.Block
}

// VisibleEvents keeps events whose calendar is selected.
func VisibleEvents(s calendar.State) []calendar.Event {
	out := make([]calendar.Event, 0, len(s.Events))
	for _, ev := range s.Events {
		if s.IsCalendarSelected(ev.CalendarID) {
			out = append(out, ev)
		}
	}
	return out
}

// CalendarColor returns the color of the calendar with id, or the fallback.
func CalendarColor(calendars []calendar.Calendar, id string) string {
	for _, c := range calendars {
		if c.ID == id && c.Color != "" {
			return c.Color
		}
	}
	return calendar.FallbackColor
}

func decorate(calendars []calendar.Calendar, events []calendar.Event) []EventItem {
	items := make([]EventItem, len(events))
	for i, ev := range events {
		items[i] = EventItem{Event: ev, Color: CalendarColor(calendars, ev.CalendarID)}
	}
	return items
}

func place(calendars []calendar.Calendar, events []calendar.Event, hourHeight, minHeight float64) []TimedItem {
	items := make([]TimedItem, len(events))
	for i, ev := range events {
		items[i] = TimedItem{
			EventItem: EventItem{Event: ev, Color: CalendarColor(calendars, ev.CalendarID)},
			Block:     dateutil.Position(ev, hourHeight, minHeight),
		}
	}
	return items
}

// Header is the title shown above the active layout.
func Header(date time.Time, mode calendar.ViewMode) string {
	switch mode {
	case calendar.ViewWeek:
		return "Week of " + dateutil.FormatDisplayDate(date)
	case calendar.ViewMonth:
		return dateutil.FormatMonth(date)
	default:
		return dateutil.FormatDisplayDate(date)
	}
}
