// Package printers renders calendars, events and the three calendar views
// for the command line.
package printers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
)

// PrettyPrint writes human readable output to Out.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Plain disables ANSI styling.
	Plain bool
}

// New returns a printer for w. Styling is turned off when w is not a
// terminal.
func New(w io.Writer, showID bool) *PrettyPrint {
	if w == nil {
		w = color.Output
	}
	return &PrettyPrint{Out: w, ShowID: showID, Plain: !IsTerminal(w)}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	if w == color.Output {
		return !color.NoColor
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.Plain {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (pp *PrettyPrint) profile() termenv.Profile {
	if pp.Plain {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// Swatch renders a colored dot for a calendar color.
func (pp *PrettyPrint) Swatch(hex string) string {
	if hex == "" {
		hex = calendar.FallbackColor
	}
	p := pp.profile()
	return p.String("●").Foreground(p.Color(hex)).String()
}

// NewLine prints an empty line.
func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out)
}

// Title prints a bold, underlined heading.
func (pp *PrettyPrint) Title(title string) {
	_, _ = pp.style(color.Bold, color.Underline).Fprintln(pp.Out, title)
}

// TitleWithCount prints a heading with an event count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	_, _ = pp.style(color.Bold, color.Underline).Fprint(pp.Out, title)
	noun := "events"
	if count == 1 {
		noun = "event"
	}
	_, _ = pp.style(color.Faint).Fprintf(pp.Out, " - %d %s\n", count, noun)
}

// Calendars prints the calendar list as a table.
func (pp *PrettyPrint) Calendars(calendars []calendar.Calendar) {
	if len(calendars) == 0 {
		pp.none()
		return
	}
	bold := pp.style(color.Bold)
	faint := pp.style(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint(" "), bold.Sprint("Name"), bold.Sprint("Color"), bold.Sprint("Visible"), bold.Sprint("Default")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, c := range calendars {
		row := []interface{}{pp.Swatch(c.Color), c.Name, c.Color, yesNo(c.IsVisible), yesNo(c.IsDefault)}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(c.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// Events prints events in a table with their calendar.
func (pp *PrettyPrint) Events(calendars []calendar.Calendar, events []calendar.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}
	bold := pp.style(color.Bold)
	faint := pp.style(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{bold.Sprint("When"), bold.Sprint(" "), bold.Sprint("Title"), bold.Sprint("Calendar")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, ev := range dateutil.SortEventsByTime(events) {
		name := ""
		hex := calendar.FallbackColor
		for _, c := range calendars {
			if c.ID == ev.CalendarID {
				name, hex = c.Name, c.Color
			}
		}
		row := []interface{}{When(ev), pp.Swatch(hex), ev.Title, name}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(ev.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// When renders an event's date range compactly.
func When(ev calendar.Event) string {
	start, end := ev.Start().Local(), ev.End().Local()
	if ev.IsAllDay {
		if dateutil.SameDay(start, end) {
			return dateutil.FormatDate(start) + " all day"
		}
		return dateutil.FormatDate(start) + " → " + dateutil.FormatDate(end)
	}
	if dateutil.SameDay(start, end) {
		return fmt.Sprintf("%s %s–%s", dateutil.FormatDate(start), dateutil.FormatTime(start), dateutil.FormatTime(end))
	}
	return dateutil.FormatDateTime(start) + " → " + dateutil.FormatDateTime(end)
}

func (pp *PrettyPrint) none() {
	_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.Out, " none\n\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
