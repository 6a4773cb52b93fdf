package view

import (
	"time"

	"tableflip.dev/daybook/pkg/dateutil"
)

// MonthCell is one day of the 6x7 month grid.
type MonthCell struct {
	Date    time.Time
	InMonth bool
	IsToday bool
	// Count is every visible event on the day; Events holds the first few.
	Count  int
	Events []EventItem
	More   int
}

// Month renders the 42-cell grid around the input date.
func Month(in Input) []MonthCell {
	date := in.date()
	now := in.now()
	visible := VisibleEvents(in.State)
	grid := dateutil.CalendarGrid(date)

	cells := make([]MonthCell, len(grid))
	for i, day := range grid {
		dayEvents := dateutil.EventsForDate(visible, day)
		shown := dayEvents
		if len(shown) > MonthEventsPerCell {
			shown = shown[:MonthEventsPerCell]
		}
		cells[i] = MonthCell{
			Date:    day,
			InMonth: dateutil.SameMonth(day, date),
			IsToday: dateutil.SameDay(day, now),
			Count:   len(dayEvents),
			Events:  decorate(in.State.Calendars, shown),
			More:    len(dayEvents) - len(shown),
		}
	}
	return cells
}

// Weekdays are the month grid column labels.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
