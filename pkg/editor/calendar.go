package editor

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/state"
)

const (
	MsgCalendarName          = "Please enter a calendar name"
	MsgCalendarColor         = "Please choose a valid color"
	MsgCalendarSave          = "Failed to save calendar"
	MsgCalendarDelete        = "Failed to delete calendar"
	MsgCalendarDeleteDefault = "Cannot delete the default calendar"
)

// CalendarActions is what the calendar form needs from the state store.
type CalendarActions interface {
	AddCalendar(ctx context.Context, data calendar.CreateCalendarData) (calendar.Calendar, error)
	UpdateCalendar(ctx context.Context, c calendar.Calendar) error
	DeleteCalendar(ctx context.Context, id string) error
}

// CalendarForm edits a calendar's name and color.
type CalendarForm struct {
	ID    string
	Name  string
	Color string

	original *calendar.Calendar
}

// NewCalendarForm seeds a form from c, or from a random palette color when
// c is nil.
func NewCalendarForm(c *calendar.Calendar) *CalendarForm {
	if c == nil {
		return &CalendarForm{Color: calendar.RandomColor()}
	}
	orig := *c
	return &CalendarForm{ID: orig.ID, Name: orig.Name, Color: orig.Color, original: &orig}
}

// IsEdit reports whether the form edits an existing calendar.
func (f *CalendarForm) IsEdit() bool { return f.original != nil }

// IsDefault reports whether the edited calendar is the default one.
func (f *CalendarForm) IsDefault() bool { return f.original != nil && f.original.IsDefault }

// Heading is the form title.
func (f *CalendarForm) Heading() string {
	if f.IsEdit() {
		return "Edit Calendar"
	}
	return "New Calendar"
}

// Validate checks the name and the color.
func (f *CalendarForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid(ErrNameRequired, MsgCalendarName)
	}
	if err := calendar.ValidColor(f.Color); err != nil {
		return invalid(ErrInvalidColor, MsgCalendarColor)
	}
	return nil
}

// Save validates and then creates or updates the calendar.
func (f *CalendarForm) Save(ctx context.Context, actions CalendarActions) (calendar.Calendar, error) {
	if err := f.Validate(); err != nil {
		return calendar.Calendar{}, err
	}
	name := strings.TrimSpace(f.Name)

	if f.original != nil {
		c := *f.original
		c.Name = name
		c.Color = f.Color
		if err := actions.UpdateCalendar(ctx, c); err != nil {
			return calendar.Calendar{}, &SaveError{Message: MsgCalendarSave, Err: err}
		}
		return c, nil
	}

	c, err := actions.AddCalendar(ctx, calendar.CreateCalendarData{Name: name, Color: f.Color})
	if err != nil {
		return calendar.Calendar{}, &SaveError{Message: MsgCalendarSave, Err: err}
	}
	return c, nil
}

// Delete removes the edited calendar and its events after confirmation.
// The default calendar is refused before asking.
func (f *CalendarForm) Delete(ctx context.Context, actions CalendarActions, c Confirmer) error {
	if f.original == nil {
		return nil
	}
	if f.original.IsDefault {
		return invalid(ErrDefaultCalendar, MsgCalendarDeleteDefault)
	}
	if err := confirm(c, "Delete Calendar",
		"Are you sure you want to delete this calendar? All events in this calendar will also be deleted."); err != nil {
		return err
	}
	if err := actions.DeleteCalendar(ctx, f.original.ID); err != nil {
		if errors.Is(err, state.ErrDefaultCalendar) {
			return invalid(ErrDefaultCalendar, MsgCalendarDeleteDefault)
		}
		return &SaveError{Message: MsgCalendarDelete, Err: err}
	}
	return nil
}
