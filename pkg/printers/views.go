package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
	"tableflip.dev/daybook/pkg/view"
)

const cellWidth = 4 // "[12]" or " 12 "

// Month prints the 6x7 grid. Days with events are bold with a dot count,
// today is underlined and days outside the month are faint.
func (pp *PrettyPrint) Month(header string, cells []view.MonthCell) {
	pp.Title(header)

	bold := pp.style(color.Bold)
	for _, wd := range view.Weekdays {
		_, _ = bold.Fprintf(pp.Out, "%-*s", cellWidth+1, wd[:2])
	}
	_, _ = fmt.Fprintln(pp.Out)

	for i, c := range cells {
		attrs := []color.Attribute{}
		switch {
		case !c.InMonth:
			attrs = append(attrs, color.Faint)
		case c.Count > 0:
			attrs = append(attrs, color.Bold)
		}
		if c.IsToday {
			attrs = append(attrs, color.Underline)
		}
		mark := " "
		if c.Count > 0 {
			mark = "•"
		}
		_, _ = pp.style(attrs...).Fprintf(pp.Out, "%2d%s", c.Date.Day(), mark)
		_, _ = fmt.Fprint(pp.Out, "  ")
		if (i+1)%7 == 0 {
			_, _ = fmt.Fprintln(pp.Out)
		}
	}
	pp.NewLine()

	// Agenda for the days that carry events, in grid order.
	faint := pp.style(color.Faint, color.Italic)
	for _, c := range cells {
		if !c.InMonth || c.Count == 0 {
			continue
		}
		_, _ = bold.Fprintf(pp.Out, "%s\n", dateutil.FormatDisplayDate(c.Date))
		for _, it := range c.Events {
			_, _ = fmt.Fprintf(pp.Out, "  %s %s\n", pp.Swatch(it.Color), eventLine(it.Event))
		}
		if c.More > 0 {
			_, _ = faint.Fprintf(pp.Out, "  +%d more\n", c.More)
		}
	}
}

// Week prints each day of the week with its events.
func (pp *PrettyPrint) Week(header string, cols []view.DayColumn) {
	pp.Title(header)
	for _, col := range cols {
		pp.dayHeading(col)
		pp.column(col)
	}
}

// Day prints one day as an hour timeline with all-day events on top.
func (pp *PrettyPrint) Day(header string, col view.DayColumn, allHours bool) {
	pp.Title(header)
	for _, it := range col.AllDay {
		_, _ = fmt.Fprintf(pp.Out, "  %s %s\n", pp.Swatch(it.Color), eventLine(it.Event))
	}
	faint := pp.style(color.Faint)
	for _, slot := range view.Slots(col.Date) {
		items := col.ItemsInHour(slot.Hour)
		if len(items) == 0 && !allHours {
			continue
		}
		_, _ = faint.Fprintf(pp.Out, "%6s │", slot.Label)
		if len(items) == 0 {
			_, _ = fmt.Fprintln(pp.Out)
			continue
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, pp.Swatch(it.Color)+" "+eventLine(it.Event))
		}
		_, _ = fmt.Fprintf(pp.Out, " %s\n", strings.Join(parts, "  "))
	}
}

func (pp *PrettyPrint) dayHeading(col view.DayColumn) {
	attrs := []color.Attribute{color.Bold}
	if col.IsToday {
		attrs = append(attrs, color.Underline)
	}
	_, _ = pp.style(attrs...).Fprintf(pp.Out, "%s %s\n", col.Date.Format("Mon"), dateutil.FormatDisplayDate(col.Date))
}

func (pp *PrettyPrint) column(col view.DayColumn) {
	if len(col.AllDay) == 0 && len(col.Timed) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprintln(pp.Out, "  none")
		return
	}
	for _, it := range col.AllDay {
		_, _ = fmt.Fprintf(pp.Out, "  %s %s\n", pp.Swatch(it.Color), eventLine(it.Event))
	}
	for _, it := range col.Timed {
		_, _ = fmt.Fprintf(pp.Out, "  %s %s\n", pp.Swatch(it.Color), eventLine(it.Event))
	}
}

func eventLine(ev calendar.Event) string {
	if ev.IsAllDay {
		return ev.Title + " (all day)"
	}
	return fmt.Sprintf("%s %s", dateutil.FormatDisplayTime(ev.Start().Local()), ev.Title)
}
