package view

import (
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
)

// DayColumn is one day on an hour timeline.
type DayColumn struct {
	Date    time.Time
	IsToday bool
	AllDay  []EventItem
	Timed   []TimedItem
}

// Week renders seven Monday-first columns at 60px per hour.
func Week(in Input) []DayColumn {
	visible := VisibleEvents(in.State)
	days := dateutil.WeekDays(in.date())
	cols := make([]DayColumn, len(days))
	for i, day := range days {
		cols[i] = column(in, visible, day, WeekHourHeight, WeekMinHeight)
	}
	return cols
}

// Day renders a single column at 80px per hour.
func Day(in Input) DayColumn {
	return column(in, VisibleEvents(in.State), in.date(), DayHourHeight, DayMinHeight)
}

func column(in Input, visible []calendar.Event, day time.Time, hourHeight, minHeight float64) DayColumn {
	allDay, timed := dateutil.SplitAllDay(dateutil.SortEventsByTime(dateutil.EventsForDate(visible, day)))
	return DayColumn{
		Date:    dateutil.DayStart(day),
		IsToday: dateutil.SameDay(day, in.now()),
		AllDay:  decorate(in.State.Calendars, allDay),
		Timed:   place(in.State.Calendars, timed, hourHeight, minHeight),
	}
}

// Slot is one tappable hour row.
type Slot struct {
	Hour  int
	Label string
	Time  time.Time
}

// Slots returns the 24 hour rows for day.
func Slots(day time.Time) []Slot {
	y, m, d := day.Date()
	slots := make([]Slot, HoursPerDay)
	for h := range slots {
		slots[h] = Slot{
			Hour:  h,
			Label: dateutil.HourLabel(h),
			Time:  time.Date(y, m, d, h, 0, 0, 0, day.Location()),
		}
	}
	return slots
}

// ItemsInHour returns the timed items whose start falls in hour.
func (c DayColumn) ItemsInHour(hour int) []TimedItem {
	out := make([]TimedItem, 0)
	for _, it := range c.Timed {
		if it.Event.Start().Hour() == hour {
			out = append(out, it)
		}
	}
	return out
}
