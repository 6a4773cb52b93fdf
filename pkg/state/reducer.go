// Package state keeps the in-memory calendar state tree and the actions that
// change it. Every mutating action persists, re-reads the affected lists and
// dispatches them through Reduce.
package state

import (
	"fmt"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
)

// Action is a reducer input.
type Action interface {
	Describe() string
}

// SetCalendars replaces the calendar list and re-derives the visible set.
type SetCalendars struct {
	Calendars []calendar.Calendar
}

func (a SetCalendars) Describe() string {
	return fmt.Sprintf("SET_CALENDARS count:%d", len(a.Calendars))
}

// SetEvents replaces the event list.
type SetEvents struct {
	Events []calendar.Event
}

func (a SetEvents) Describe() string {
	return fmt.Sprintf("SET_EVENTS count:%d", len(a.Events))
}

// SetSelectedDate moves the navigation cursor.
type SetSelectedDate struct {
	Date time.Time
}

func (a SetSelectedDate) Describe() string {
	return fmt.Sprintf("SET_SELECTED_DATE %s", a.Date.Format("2006-01-02"))
}

// SetViewMode switches between day, week and month.
type SetViewMode struct {
	Mode calendar.ViewMode
}

func (a SetViewMode) Describe() string {
	return fmt.Sprintf("SET_VIEW_MODE %s", a.Mode)
}

// Initial returns the state before any data is loaded.
func Initial(now time.Time) calendar.State {
	return calendar.State{
		Calendars:           []calendar.Calendar{},
		Events:              []calendar.Event{},
		SelectedDate:        now,
		ViewMode:            calendar.ViewMonth,
		SelectedCalendarIDs: []string{},
	}
}

// Reduce returns the state after applying action. Unknown actions return
// the state unchanged.
func Reduce(s calendar.State, action Action) calendar.State {
	switch a := action.(type) {
	case SetCalendars:
		s.Calendars = append([]calendar.Calendar{}, a.Calendars...)
		s.SelectedCalendarIDs = visibleIDs(a.Calendars)
	case SetEvents:
		s.Events = append([]calendar.Event{}, a.Events...)
	case SetSelectedDate:
		s.SelectedDate = a.Date
	case SetViewMode:
		s.ViewMode = a.Mode
	}
	return s
}

func visibleIDs(calendars []calendar.Calendar) []string {
	ids := make([]string, 0, len(calendars))
	for _, c := range calendars {
		if c.IsVisible {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
