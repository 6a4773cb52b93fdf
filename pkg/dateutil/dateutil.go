// Package dateutil holds the date-range, navigation and event placement math
// used by every calendar view. Weeks start on Monday.
package dateutil

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"tableflip.dev/daybook/pkg/calendar"
)

const (
	layoutDate        = "2006-01-02"
	layoutTime        = "15:04"
	layoutDateTime    = "2006-01-02 15:04"
	layoutDisplayDate = "January 2, 2006"
	layoutDisplayTime = "3:04 PM"
	layoutMonth       = "January 2006"

	// GridCells is the fixed six-week month grid size.
	GridCells = 42
)

var weekConfig = &now.Config{WeekStartDay: time.Monday}

func with(t time.Time) *now.Now {
	return weekConfig.With(t)
}

// Direction selects forward or backward navigation.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// DayStart returns 00:00 of t's day.
func DayStart(t time.Time) time.Time { return with(t).BeginningOfDay() }

// DayEnd returns the last instant of t's day.
func DayEnd(t time.Time) time.Time { return with(t).EndOfDay() }

// WeekStart returns the Monday 00:00 on or before t.
func WeekStart(t time.Time) time.Time { return with(t).BeginningOfWeek() }

// WeekEnd returns the last instant of the Sunday ending t's week.
func WeekEnd(t time.Time) time.Time { return with(t).EndOfWeek() }

// MonthStart returns 00:00 on the first of t's month.
func MonthStart(t time.Time) time.Time { return with(t).BeginningOfMonth() }

// MonthEnd returns the last instant of t's month.
func MonthEnd(t time.Time) time.Time { return with(t).EndOfMonth() }

// Range is an inclusive instant interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End].
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ViewDateRange returns the span covered by mode around date.
func ViewDateRange(date time.Time, mode calendar.ViewMode) Range {
	switch mode {
	case calendar.ViewWeek:
		return Range{Start: WeekStart(date), End: WeekEnd(date)}
	case calendar.ViewMonth:
		return Range{Start: MonthStart(date), End: MonthEnd(date)}
	default:
		return Range{Start: DayStart(date), End: DayEnd(date)}
	}
}

// Navigate steps date one unit of mode in dir. Month steps clamp the day to
// the length of the target month so a round trip stays in the same month.
func Navigate(date time.Time, dir Direction, mode calendar.ViewMode) time.Time {
	switch mode {
	case calendar.ViewDay:
		return date.AddDate(0, 0, int(dir))
	case calendar.ViewWeek:
		return date.AddDate(0, 0, 7*int(dir))
	case calendar.ViewMonth:
		return AddMonths(date, int(dir))
	default:
		return date
	}
}

// AddMonths adds n months, clamping the day of month instead of overflowing.
func AddMonths(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(n), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := DaysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return MonthEnd(t).Day()
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// SameWeek reports whether a and b fall in the same Monday-based week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b.In(a.Location())))
}

// SameMonth reports whether a and b fall in the same month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.In(a.Location()).Date()
	return ay == by && am == bm
}

// SamePeriod reports whether a and b share the unit of mode.
func SamePeriod(a, b time.Time, mode calendar.ViewMode) bool {
	switch mode {
	case calendar.ViewWeek:
		return SameWeek(a, b)
	case calendar.ViewMonth:
		return SameMonth(a, b)
	default:
		return SameDay(a, b)
	}
}

// EventOnDate reports whether ev renders on date. All-day events match every
// day from their start day through their end; timed events only match their
// start day.
func EventOnDate(ev calendar.Event, date time.Time) bool {
	if ev.IsAllDay {
		if SameDay(ev.Start(), date) {
			return true
		}
		day := DayStart(date)
		return !DayStart(ev.Start()).After(day) && !ev.End().Before(day)
	}
	return SameDay(ev.Start(), date)
}

// EventsForDate filters events onto a single date.
func EventsForDate(events []calendar.Event, date time.Time) []calendar.Event {
	out := make([]calendar.Event, 0)
	for _, ev := range events {
		if EventOnDate(ev, date) {
			out = append(out, ev)
		}
	}
	return out
}

func overlaps(ev calendar.Event, r Range) bool {
	return r.Contains(ev.Start()) ||
		r.Contains(ev.End()) ||
		(!ev.Start().After(r.Start) && !ev.End().Before(r.End))
}

// EventsForDateRange returns events that start, end or span inside [start, end].
func EventsForDateRange(events []calendar.Event, start, end time.Time) []calendar.Event {
	r := Range{Start: start, End: end}
	out := make([]calendar.Event, 0)
	for _, ev := range events {
		if overlaps(ev, r) {
			out = append(out, ev)
		}
	}
	return out
}

// IsEventInView reports whether ev touches the range mode shows around date.
func IsEventInView(ev calendar.Event, date time.Time, mode calendar.ViewMode) bool {
	return overlaps(ev, ViewDateRange(date, mode))
}

// WeekDays returns the seven days of date's week, Monday first.
func WeekDays(date time.Time) []time.Time {
	start := WeekStart(date)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthDays returns every day of date's month.
func MonthDays(date time.Time) []time.Time {
	start := MonthStart(date)
	n := DaysIn(date)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// CalendarGrid returns the 42 days of the month grid, starting on the Monday
// on or before the first of date's month.
func CalendarGrid(date time.Time) []time.Time {
	start := WeekStart(MonthStart(date))
	days := make([]time.Time, GridCells)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// SortEventsByTime returns a copy ordered all-day first, then by start.
func SortEventsByTime(events []calendar.Event) []calendar.Event {
	out := append([]calendar.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsAllDay != b.IsAllDay {
			return a.IsAllDay
		}
		return a.Start().Before(b.Start())
	})
	return out
}

// SplitAllDay segregates all-day and timed events, preserving order.
func SplitAllDay(events []calendar.Event) (allDay, timed []calendar.Event) {
	allDay = make([]calendar.Event, 0)
	timed = make([]calendar.Event, 0)
	for _, ev := range events {
		if ev.IsAllDay {
			allDay = append(allDay, ev)
		} else {
			timed = append(timed, ev)
		}
	}
	return allDay, timed
}

// Block is the vertical placement of a timed event on an hour axis.
type Block struct {
	Top    float64
	Height float64
}

// Position maps a timed event onto an axis of hourHeight pixels per hour.
// Height is floor-clamped to minHeight; top is never clamped.
func Position(ev calendar.Event, hourHeight, minHeight float64) Block {
	start := fractionalHour(ev.Start())
	end := fractionalHour(ev.End())
	height := (end - start) * hourHeight
	if height < minHeight {
		height = minHeight
	}
	return Block{Top: start * hourHeight, Height: height}
}

func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// FormatDate renders yyyy-MM-dd.
func FormatDate(t time.Time) string { return t.Format(layoutDate) }

// FormatTime renders HH:mm.
func FormatTime(t time.Time) string { return t.Format(layoutTime) }

// FormatDateTime renders yyyy-MM-dd HH:mm.
func FormatDateTime(t time.Time) string { return t.Format(layoutDateTime) }

// FormatDisplayDate renders "January 2, 2006".
func FormatDisplayDate(t time.Time) string { return t.Format(layoutDisplayDate) }

// FormatDisplayTime renders "3:04 PM".
func FormatDisplayTime(t time.Time) string { return t.Format(layoutDisplayTime) }

// FormatMonth renders "January 2006".
func FormatMonth(t time.Time) string { return t.Format(layoutMonth) }

// HourLabel renders an hour slot label such as "12 AM" or "3 PM".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// ParseDate parses yyyy-MM-dd in the local zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateutil: invalid date %q", s)
	}
	return t, nil
}

// DateFromTimeString returns base's day at the HH:MM in s.
func DateFromTimeString(base time.Time, s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("dateutil: invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("dateutil: invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("dateutil: invalid minute in %q", s)
	}
	y, mo, d := base.Date()
	return time.Date(y, mo, d, h, m, 0, 0, base.Location()), nil
}
