// Package calendar defines the calendar and event records shared by the
// store, the state layer and every view.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Calendar groups events under a name and display color.
type Calendar struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsVisible bool      `json:"isVisible"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Event is a single timed or all-day entry on a calendar.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   Timestamp `json:"startDate"`
	EndDate     Timestamp `json:"endDate"`
	IsAllDay    bool      `json:"isAllDay"`
	CalendarID  string    `json:"calendarId"`
	Location    string    `json:"location,omitempty"`
	// Reminder is minutes before the start. Nothing schedules it.
	Reminder  *int      `json:"reminder,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Start returns the event start as a time.Time.
func (e Event) Start() time.Time { return e.StartDate.Time }

// End returns the event end as a time.Time.
func (e Event) End() time.Time { return e.EndDate.Time }

// String renders a short human label for logs and prompts.
func (e Event) String() string {
	if e.IsAllDay {
		return fmt.Sprintf("%s (all day %s)", e.Title, e.StartDate.Local().Format("2006-01-02"))
	}
	return fmt.Sprintf("%s (%s)", e.Title, e.StartDate.Local().Format("2006-01-02 15:04"))
}

// CreateEventData is the input for adding an event.
type CreateEventData struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsAllDay    bool
	CalendarID  string
	Location    string
	Reminder    *int
}

// CreateCalendarData is the input for adding a calendar.
type CreateCalendarData struct {
	Name  string
	Color string
}

// ViewMode selects which grid renders and the unit used for navigation.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// AllViewModes returns the supported view modes.
func AllViewModes() []ViewMode {
	return []ViewMode{ViewDay, ViewWeek, ViewMonth}
}

// ParseViewMode converts a string into a ViewMode.
func ParseViewMode(raw string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllViewModes() {
		if candidate == m {
			return candidate, nil
		}
	}
	return ViewMonth, fmt.Errorf("calendar: unknown view mode %q", raw)
}

// State is the in-memory tree rendered by the views.
type State struct {
	Calendars           []Calendar
	Events              []Event
	SelectedDate        time.Time
	ViewMode            ViewMode
	SelectedCalendarIDs []string
}

// IsCalendarSelected reports whether events of the calendar should render.
func (s State) IsCalendarSelected(id string) bool {
	for _, sel := range s.SelectedCalendarIDs {
		if sel == id {
			return true
		}
	}
	return false
}

// FindCalendar returns the calendar with the given id.
func (s State) FindCalendar(id string) (Calendar, bool) {
	for _, c := range s.Calendars {
		if c.ID == id {
			return c, true
		}
	}
	return Calendar{}, false
}

// FindEvent returns the event with the given id.
func (s State) FindEvent(id string) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// DefaultCalendar returns the calendar flagged default, falling back to the
// first calendar.
func (s State) DefaultCalendar() (Calendar, bool) {
	for _, c := range s.Calendars {
		if c.IsDefault {
			return c, true
		}
	}
	if len(s.Calendars) > 0 {
		return s.Calendars[0], true
	}
	return Calendar{}, false
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

const (
	DefaultCalendarName  = "Personal"
	DefaultCalendarColor = "#45B7D1"
)

// NewDefaultCalendar builds the calendar synthesized on first load.
func NewDefaultCalendar(now time.Time) Calendar {
	return Calendar{
		ID:        NewID(),
		Name:      DefaultCalendarName,
		Color:     DefaultCalendarColor,
		IsVisible: true,
		IsDefault: true,
		CreatedAt: Timestamp{Time: now},
		UpdatedAt: Timestamp{Time: now},
	}
}

// NewCalendar builds a visible, non-default calendar from create data.
func NewCalendar(data CreateCalendarData, now time.Time) Calendar {
	return Calendar{
		ID:        NewID(),
		Name:      data.Name,
		Color:     data.Color,
		IsVisible: true,
		CreatedAt: Timestamp{Time: now},
		UpdatedAt: Timestamp{Time: now},
	}
}

// NewEvent builds an event from create data.
func NewEvent(data CreateEventData, now time.Time) Event {
	return Event{
		ID:          NewID(),
		Title:       data.Title,
		Description: data.Description,
		StartDate:   Timestamp{Time: data.StartDate},
		EndDate:     Timestamp{Time: data.EndDate},
		IsAllDay:    data.IsAllDay,
		CalendarID:  data.CalendarID,
		Location:    data.Location,
		Reminder:    data.Reminder,
		CreatedAt:   Timestamp{Time: now},
		UpdatedAt:   Timestamp{Time: now},
	}
}
