package view

import (
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
)

var today = time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local)

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.May, day, hour, min, 0, 0, time.Local)
}

func ev(id, cal string, start, end time.Time) calendar.Event {
	return calendar.Event{
		ID:         id,
		Title:      id,
		CalendarID: cal,
		StartDate:  calendar.Timestamp{Time: start},
		EndDate:    calendar.Timestamp{Time: end},
	}
}

func testState() calendar.State {
	return calendar.State{
		Calendars: []calendar.Calendar{
			{ID: "work", Color: "#FF6B6B", IsVisible: true},
			{ID: "home", Color: "#4ECDC4", IsVisible: true},
		},
		Events: []calendar.Event{
			ev("a", "work", at(15, 9, 0), at(15, 10, 0)),
			ev("b", "work", at(15, 11, 0), at(15, 12, 0)),
			ev("c", "home", at(15, 14, 0), at(15, 15, 30)),
			ev("d", "orphan", at(15, 16, 0), at(15, 16, 10)),
		},
		SelectedDate:        today,
		ViewMode:            calendar.ViewMonth,
		SelectedCalendarIDs: []string{"work", "home", "orphan"},
	}
}

func TestMonthCells(t *testing.T) {
	cells := Month(Input{State: testState(), Now: today})
	if len(cells) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(cells))
	}
	if cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("grid should start on Monday, got %s", cells[0].Date.Weekday())
	}
	if cells[0].InMonth {
		t.Fatalf("April 29 should be outside May")
	}

	var found bool
	for _, c := range cells {
		if !dateutil.SameDay(c.Date, today) {
			if c.IsToday {
				t.Fatalf("%s marked as today", c.Date)
			}
			continue
		}
		found = true
		if !c.IsToday || !c.InMonth {
			t.Fatalf("today cell flags wrong: %+v", c)
		}
		if c.Count != 4 || len(c.Events) != MonthEventsPerCell || c.More != 2 {
			t.Fatalf("unexpected cell counts count=%d shown=%d more=%d", c.Count, len(c.Events), c.More)
		}
		if c.Events[0].Color != "#FF6B6B" {
			t.Fatalf("expected calendar color, got %s", c.Events[0].Color)
		}
	}
	if !found {
		t.Fatalf("today missing from grid")
	}
}

func TestCalendarColorFallback(t *testing.T) {
	s := testState()
	if got := CalendarColor(s.Calendars, "orphan"); got != calendar.FallbackColor {
		t.Fatalf("expected fallback color, got %s", got)
	}
	day := Day(Input{State: s, Now: today})
	last := day.Timed[len(day.Timed)-1]
	if last.Event.ID != "d" || last.Color != "#007AFF" {
		t.Fatalf("unexpected last item %+v", last)
	}
}

func TestDayBlocks(t *testing.T) {
	day := Day(Input{State: testState(), Now: today})
	if len(day.Timed) != 4 {
		t.Fatalf("expected 4 timed items, got %d", len(day.Timed))
	}
	c := day.Timed[2]
	if c.Event.ID != "c" || c.Top != 14*DayHourHeight || c.Height != 1.5*DayHourHeight {
		t.Fatalf("unexpected block for c: %+v", c.Block)
	}
	if short := day.Timed[3]; short.Height != DayMinHeight {
		t.Fatalf("expected min height, got %v", short.Height)
	}
	if len(day.ItemsInHour(9)) != 1 || len(day.ItemsInHour(13)) != 0 {
		t.Fatalf("unexpected hour bucketing")
	}
	if slots := Slots(today); len(slots) != 24 || slots[13].Label != "1 PM" || slots[13].Time.Hour() != 13 {
		t.Fatalf("unexpected slots %+v", slots[13])
	}
}

func TestSlotsFollowWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("no zone data: %v", err)
	}
	for _, day := range []time.Time{
		time.Date(2024, time.March, 10, 12, 0, 0, 0, loc),
		time.Date(2024, time.November, 3, 12, 0, 0, 0, loc),
	} {
		slots := Slots(day)
		// 02:00 does not exist on the spring-forward day.
		for h := 3; h < HoursPerDay; h++ {
			if got := slots[h].Time; got.Hour() != h || got.Day() != day.Day() {
				t.Fatalf("%s slot %d starts at %s", day.Format("2006-01-02"), h, got)
			}
		}
	}
}

func TestWeekColumns(t *testing.T) {
	s := testState()
	s.Events = append(s.Events, calendar.Event{
		ID:         "trip",
		CalendarID: "home",
		IsAllDay:   true,
		StartDate:  calendar.Timestamp{Time: at(13, 0, 0)},
		EndDate:    calendar.Timestamp{Time: at(15, 23, 59)},
	})
	cols := Week(Input{State: s, Now: today})
	if len(cols) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(cols))
	}
	if cols[0].Date.Day() != 13 || cols[0].Date.Weekday() != time.Monday {
		t.Fatalf("week should start Monday May 13, got %s", cols[0].Date)
	}
	for i, want := range []int{1, 1, 1, 0, 0, 0, 0} {
		if got := len(cols[i].AllDay); got != want {
			t.Fatalf("column %d: expected %d all-day, got %d", i, want, got)
		}
	}
	wed := cols[2]
	if !wed.IsToday || len(wed.Timed) != 4 {
		t.Fatalf("unexpected wednesday column %+v", wed)
	}
	if wed.Timed[2].Height != 1.5*WeekHourHeight || wed.Timed[3].Height != WeekMinHeight {
		t.Fatalf("unexpected week heights %v %v", wed.Timed[2].Height, wed.Timed[3].Height)
	}
}

func TestHiddenCalendarRemovedFromAllViews(t *testing.T) {
	s := testState()
	s.SelectedCalendarIDs = []string{"home", "orphan"}
	in := Input{State: s, Now: today}

	for _, c := range Month(in) {
		for _, it := range c.Events {
			if it.Event.CalendarID == "work" {
				t.Fatalf("month shows hidden event %s", it.Event.ID)
			}
		}
		if dateutil.SameDay(c.Date, today) && c.Count != 2 {
			t.Fatalf("expected 2 visible events, got %d", c.Count)
		}
	}
	for _, col := range Week(in) {
		for _, it := range col.Timed {
			if it.Event.CalendarID == "work" {
				t.Fatalf("week shows hidden event %s", it.Event.ID)
			}
		}
	}
	day := Day(in)
	if len(day.Timed) != 2 || day.Timed[0].Event.ID != "c" {
		t.Fatalf("day should keep only other calendars, got %+v", day.Timed)
	}
}

func TestHeader(t *testing.T) {
	cases := map[calendar.ViewMode]string{
		calendar.ViewDay:   "May 15, 2024",
		calendar.ViewWeek:  "Week of May 15, 2024",
		calendar.ViewMonth: "May 2024",
	}
	for mode, want := range cases {
		if got := Header(today, mode); got != want {
			t.Fatalf("%s: expected %q, got %q", mode, want, got)
		}
	}
}

func TestHandlersFallback(t *testing.T) {
	var pressed time.Time
	h := Handlers{OnDatePress: func(d time.Time) { pressed = d }}
	h.DateNumberPress(today)
	if !pressed.Equal(today) {
		t.Fatalf("expected date number press to fall back to date press")
	}
	// Unset handlers are no-ops.
	h.EventPress(calendar.Event{})
	h.TimeSlotPress(today, 3)
}
