// Package exchange moves events in and out of iCalendar files.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/ical"
	"tableflip.dev/daybook/pkg/logging"
)

var errNoService = errors.New("exchange: no service configured")

// Export writes events as an iCalendar document.
type Export struct {
	Service *app.Service
	// CalendarRef limits the export to one calendar.
	CalendarRef string
	Out         io.Writer
}

// Do executes the export.
func (e *Export) Do(_ context.Context) error {
	if e.Service == nil {
		return errNoService
	}
	cals := e.Service.Calendars()
	q := app.EventQuery{IncludeHidden: true}
	if e.CalendarRef != "" {
		c, err := e.Service.FindCalendar(e.CalendarRef)
		if err != nil {
			return err
		}
		cals = []calendar.Calendar{c}
		q.CalendarID = c.ID
	}
	w := e.Out
	if w == nil {
		w = os.Stdout
	}
	return ical.Export(w, cals, e.Service.Events(q), e.Service.Clock())
}

// Import reads an iCalendar document into a calendar.
type Import struct {
	Service *app.Service
	In      io.Reader
	// CalendarRef defaults to the default calendar.
	CalendarRef string
	Out         io.Writer
}

// Do executes the import. Events are added one at a time; the first failure
// stops the import.
func (i *Import) Do(ctx context.Context) error {
	if i.Service == nil {
		return errNoService
	}
	if i.In == nil {
		return errors.New("exchange: no input")
	}
	target, err := i.target()
	if err != nil {
		return err
	}
	data, err := ical.Import(i.In, target.ID)
	if err != nil {
		return err
	}
	added := 0
	for _, d := range data {
		if _, err := i.Service.Store.AddEvent(ctx, d); err != nil {
			return fmt.Errorf("exchange: import %q: %w", d.Title, err)
		}
		added++
	}
	logging.Info("exchange: imported", "count", added, "calendar", target.Name)

	w := i.Out
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintf(w, "Imported %d events into %s\n", added, target.Name)
	return err
}

func (i *Import) target() (calendar.Calendar, error) {
	if i.CalendarRef != "" {
		return i.Service.FindCalendar(i.CalendarRef)
	}
	if def, ok := i.Service.Store.State().DefaultCalendar(); ok {
		return def, nil
	}
	return calendar.Calendar{}, fmt.Errorf("%w: default calendar", app.ErrNotFound)
}
