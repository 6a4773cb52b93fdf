// Package events contains runners for event commands.
package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/editor"
	"tableflip.dev/daybook/pkg/printers"
)

var errNoService = errors.New("events: no service configured")

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// List prints events in a date range.
type List struct {
	Service *app.Service
	// From and To bound the listing; both zero lists everything.
	From        time.Time
	To          time.Time
	CalendarRef string
	All         bool
	ShowID      bool
	Out         io.Writer
}

// Do executes the listing.
func (l *List) Do(_ context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	q := app.EventQuery{From: l.From, To: l.To, IncludeHidden: l.All}
	if l.CalendarRef != "" {
		c, err := l.Service.FindCalendar(l.CalendarRef)
		if err != nil {
			return err
		}
		q.CalendarID = c.ID
		q.IncludeHidden = true
	}
	events := l.Service.Events(q)
	pp := printers.New(out(l.Out), l.ShowID)
	pp.TitleWithCount("Events", len(events))
	pp.Events(l.Service.Store.State().Calendars, events)
	return nil
}

// Add creates an event. Without a start time it begins at the next hour,
// or at 9:00 on another day, and lasts one hour.
type Add struct {
	Service *app.Service
	Patch   editor.EventPatch
	Out     io.Writer
}

// Do executes the creation.
func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	hour := a.Service.Clock().Hour() + 1
	if a.Patch.Date != "" || hour > 23 {
		hour = 9
	}
	form, err := a.Service.NewEventForm(a.Patch, hour)
	if err != nil {
		return err
	}
	ev, err := form.Save(ctx, a.Service.Store.State(), a.Service.Store)
	if err != nil {
		return err
	}
	return a.print(ev, "Created")
}

func (a *Add) print(ev calendar.Event, verb string) error {
	pp := printers.New(out(a.Out), true)
	pp.Title(verb + " event")
	pp.Events(a.Service.Store.State().Calendars, []calendar.Event{ev})
	return nil
}

// Edit updates an existing event.
type Edit struct {
	Service *app.Service
	Ref     string
	Patch   editor.EventPatch
	Out     io.Writer
}

// Do executes the update.
func (e *Edit) Do(ctx context.Context) error {
	if e.Service == nil {
		return errNoService
	}
	form, err := e.Service.EditEventForm(e.Ref, e.Patch)
	if err != nil {
		return err
	}
	updated, err := form.Save(ctx, e.Service.Store.State(), e.Service.Store)
	if err != nil {
		return err
	}
	a := Add{Service: e.Service, Out: e.Out}
	return a.print(updated, "Updated")
}

// Delete removes an event after confirmation.
type Delete struct {
	Service   *app.Service
	Ref       string
	Confirmer editor.Confirmer
	Out       io.Writer
}

// Do executes the deletion.
func (d *Delete) Do(ctx context.Context) error {
	if d.Service == nil {
		return errNoService
	}
	ev, err := d.Service.FindEvent(d.Ref)
	if err != nil {
		return err
	}
	form := editor.NewEventForm(d.Service.Store.State(), editor.EventFormOptions{Event: &ev})
	if err := form.Delete(ctx, d.Service.Store, d.Confirmer); err != nil {
		if errors.Is(err, editor.ErrCancelled) {
			_, err = fmt.Fprintln(out(d.Out), "Cancelled")
		}
		return err
	}
	_, err = fmt.Fprintf(out(d.Out), "Deleted %s\n", ev)
	return err
}
