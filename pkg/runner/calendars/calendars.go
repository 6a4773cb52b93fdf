// Package calendars contains runners for calendar management commands.
package calendars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/editor"
	"tableflip.dev/daybook/pkg/printers"
)

var errNoService = errors.New("calendars: no service configured")

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// List prints every calendar.
type List struct {
	Service *app.Service
	ShowID  bool
	Out     io.Writer
}

// Do executes the listing.
func (l *List) Do(_ context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	pp := printers.New(out(l.Out), l.ShowID)
	cals := l.Service.Calendars()
	pp.TitleWithCount("Calendars", len(cals))
	pp.Calendars(cals)
	return nil
}

// Add creates a calendar. An empty Color picks a random palette color.
type Add struct {
	Service *app.Service
	Name    string
	Color   string
	Out     io.Writer
}

// Do executes the creation.
func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	f := editor.NewCalendarForm(nil)
	f.Name = a.Name
	if a.Color != "" {
		f.Color = a.Color
	}
	c, err := f.Save(ctx, a.Service.Store)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out(a.Out), "Created calendar %s (%s)\n", c.Name, c.ID)
	return err
}

// Edit renames or recolors a calendar. Nil fields are left unchanged.
type Edit struct {
	Service *app.Service
	Ref     string
	Name    *string
	Color   *string
	Out     io.Writer
}

// Do executes the update.
func (e *Edit) Do(ctx context.Context) error {
	if e.Service == nil {
		return errNoService
	}
	c, err := e.Service.FindCalendar(e.Ref)
	if err != nil {
		return err
	}
	f := editor.NewCalendarForm(&c)
	if e.Name != nil {
		f.Name = *e.Name
	}
	if e.Color != nil {
		f.Color = *e.Color
	}
	updated, err := f.Save(ctx, e.Service.Store)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out(e.Out), "Updated calendar %s\n", updated.Name)
	return err
}

// Delete removes a calendar and its events after confirmation.
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
	c, err := d.Service.FindCalendar(d.Ref)
	if err != nil {
		return err
	}
	if err := editor.NewCalendarForm(&c).Delete(ctx, d.Service.Store, d.Confirmer); err != nil {
		if errors.Is(err, editor.ErrCancelled) {
			_, err = fmt.Fprintln(out(d.Out), "Cancelled")
		}
		return err
	}
	_, err = fmt.Fprintf(out(d.Out), "Deleted calendar %s\n", c.Name)
	return err
}

// Toggle flips whether a calendar's events are shown.
type Toggle struct {
	Service *app.Service
	Ref     string
	Out     io.Writer
}

// Do executes the toggle.
func (t *Toggle) Do(ctx context.Context) error {
	if t.Service == nil {
		return errNoService
	}
	c, err := t.Service.FindCalendar(t.Ref)
	if err != nil {
		return err
	}
	if err := t.Service.Store.ToggleCalendarVisibility(ctx, c.ID); err != nil {
		return err
	}
	verb := "Showing"
	if c.IsVisible {
		verb = "Hiding"
	}
	_, err = fmt.Fprintf(out(t.Out), "%s %s\n", verb, c.Name)
	return err
}

// Clear erases every calendar and event after confirmation. A fresh default
// calendar is created afterwards.
type Clear struct {
	Service   *app.Service
	Confirmer editor.Confirmer
	Out       io.Writer
}

// Do executes the wipe.
func (c *Clear) Do(ctx context.Context) error {
	if c.Service == nil {
		return errNoService
	}
	if c.Confirmer == nil {
		return editor.ErrCancelled
	}
	ok, err := c.Confirmer.Confirm("Clear All Data", "This deletes every calendar and event.")
	if err != nil {
		return err
	}
	if !ok {
		_, err = fmt.Fprintln(out(c.Out), "Cancelled")
		return err
	}
	if err := c.Service.Store.ClearAllData(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out(c.Out), "All data cleared")
	return err
}
