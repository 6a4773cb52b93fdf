package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/view"
)

func testData() ([]calendar.Calendar, []calendar.Event) {
	cals := []calendar.Calendar{
		{ID: "c1", Name: "Personal", Color: "#45B7D1", IsVisible: true, IsDefault: true},
		{ID: "c2", Name: "Work", Color: "#FF6B6B"},
	}
	start := time.Date(2024, time.May, 15, 14, 0, 0, 0, time.Local)
	events := []calendar.Event{
		{ID: "e1", Title: "Review", CalendarID: "c2",
			StartDate: calendar.Timestamp{Time: start}, EndDate: calendar.Timestamp{Time: start.Add(90 * time.Minute)}},
		{ID: "e2", Title: "Holiday", CalendarID: "c1", IsAllDay: true,
			StartDate: calendar.Timestamp{Time: time.Date(2024, time.May, 15, 0, 0, 0, 0, time.Local)},
			EndDate:   calendar.Timestamp{Time: time.Date(2024, time.May, 15, 23, 59, 59, 0, time.Local)}},
	}
	return cals, events
}

func TestPlainOutputHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf, true)
	if !pp.Plain {
		t.Fatalf("buffers are not terminals")
	}
	cals, events := testData()
	pp.Calendars(cals)
	pp.Events(cals, events)
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain output contains escapes: %q", out)
	}
	for _, want := range []string{"Personal", "Work", "c1", "Review", "2024-05-15 14:00–15:30", "2024-05-15 all day"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// All-day events sort first.
	if strings.Index(out, "Holiday") > strings.Index(out, "Review") {
		t.Fatalf("expected all-day event first:\n%s", out)
	}
}

func TestViewsRender(t *testing.T) {
	cals, events := testData()
	now := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.Local)
	in := view.Input{
		State: calendar.State{Calendars: cals, Events: events, SelectedDate: now, SelectedCalendarIDs: []string{"c1", "c2"}},
		Now:   now,
	}

	var buf bytes.Buffer
	pp := New(&buf, false)
	pp.Month(view.Header(now, calendar.ViewMonth), view.Month(in))
	pp.Week(view.Header(now, calendar.ViewWeek), view.Week(in))
	pp.Day(view.Header(now, calendar.ViewDay), view.Day(in), false)
	out := buf.String()

	for _, want := range []string{"May 2024", "Mo", "Week of May 15, 2024", "Wed May 15, 2024", "2 PM │", "2:00 PM Review", "Holiday (all day)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmptyListsSayNone(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Events(nil, nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none, got %q", buf.String())
	}
}
