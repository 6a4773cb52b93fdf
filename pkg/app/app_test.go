package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/editor"
	"tableflip.dev/daybook/pkg/store"
)

var fixedNow = time.Date(2024, time.May, 15, 9, 0, 0, 0, time.Local)

func openSignedIn(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, Options{Config: store.NewConfig(t.TempDir()), Now: func() time.Time { return fixedNow }})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Require(ctx); !errors.Is(err, auth.ErrSignedOut) {
		t.Fatalf("expected signed out before sign in, got %v", err)
	}
	if _, err := s.Gate.SignUp(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if err := s.Gate.SignIn(ctx, "ada@example.com", "secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := s.Require(ctx); err != nil {
		t.Fatalf("require: %v", err)
	}
	return s
}

func TestFindCalendar(t *testing.T) {
	ctx := context.Background()
	s := openSignedIn(t)
	work, err := s.Store.AddCalendar(ctx, calendar.CreateCalendarData{Name: "Work", Color: "#FF6B6B"})
	if err != nil {
		t.Fatalf("add calendar: %v", err)
	}

	c, err := s.FindCalendar("personal")
	if err != nil || !c.IsDefault {
		t.Fatalf("lookup by name: %+v %v", c, err)
	}
	c, err = s.FindCalendar(work.ID[:8])
	if err != nil || c.ID != work.ID {
		t.Fatalf("lookup by prefix: %+v %v", c, err)
	}
	if _, err := s.FindCalendar("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	cals := s.Calendars()
	if len(cals) != 2 || !cals[0].IsDefault || cals[1].Name != "Work" {
		t.Fatalf("unexpected order %+v", cals)
	}
}

func TestEventsQuery(t *testing.T) {
	ctx := context.Background()
	s := openSignedIn(t)
	def, _ := s.Store.State().DefaultCalendar()
	work, _ := s.Store.AddCalendar(ctx, calendar.CreateCalendarData{Name: "Work", Color: "#FF6B6B"})

	add := func(title, calID string, day, hour int) calendar.Event {
		start := time.Date(2024, time.May, day, hour, 0, 0, 0, time.Local)
		ev, err := s.Store.AddEvent(ctx, calendar.CreateEventData{Title: title, StartDate: start, EndDate: start.Add(time.Hour), CalendarID: calID})
		if err != nil {
			t.Fatalf("add event: %v", err)
		}
		return ev
	}
	add("late", def.ID, 15, 16)
	add("early", def.ID, 15, 8)
	add("standup", work.ID, 15, 10)
	add("next week", def.ID, 22, 9)

	day := s.Events(EventQuery{
		From: time.Date(2024, time.May, 15, 0, 0, 0, 0, time.Local),
		To:   time.Date(2024, time.May, 15, 23, 59, 0, 0, time.Local),
	})
	if len(day) != 3 || day[0].Title != "early" || day[2].Title != "late" {
		t.Fatalf("unexpected day events %+v", day)
	}

	if err := s.Store.ToggleCalendarVisibility(ctx, work.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := s.Events(EventQuery{}); len(got) != 3 {
		t.Fatalf("hidden calendar should be filtered, got %d", len(got))
	}
	if got := s.Events(EventQuery{IncludeHidden: true, CalendarID: work.ID}); len(got) != 1 {
		t.Fatalf("expected the hidden calendar's event, got %d", len(got))
	}

	ev := s.Events(EventQuery{})[0]
	found, err := s.FindEvent(ev.ID[:6])
	if err != nil || found.ID != ev.ID {
		t.Fatalf("find event: %+v %v", found, err)
	}
}

func TestNewEventForm(t *testing.T) {
	ctx := context.Background()
	s := openSignedIn(t)
	work, _ := s.Store.AddCalendar(ctx, calendar.CreateCalendarData{Name: "Work", Color: "#FF6B6B"})

	form, err := s.NewEventForm(editor.EventPatch{Title: "Retro", Calendar: "Work", Date: "2024-05-20"}, 9)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if form.CalendarID != work.ID || form.StartDate != "2024-05-20" || form.StartTime != "09:00" || form.EndTime != "10:00" {
		t.Fatalf("unexpected form %+v", form)
	}

	form, err = s.NewEventForm(editor.EventPatch{Title: "Call", Start: "16:15"}, 9)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if form.StartDate != "2024-05-15" || form.StartTime != "16:15" || form.EndTime != "17:15" {
		t.Fatalf("start flag should set the time today, got %+v", form)
	}

	if _, err := s.NewEventForm(editor.EventPatch{Calendar: "missing"}, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown calendar, got %v", err)
	}

	ev, err := form.Save(ctx, s.Store.State(), s.Store)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	allDay := true
	edit, err := s.EditEventForm(ev.ID, editor.EventPatch{AllDay: &allDay, Location: "Home"})
	if err != nil {
		t.Fatalf("edit form: %v", err)
	}
	if !edit.IsEdit() || !edit.IsAllDay || edit.Title != "Call" || edit.Location != "Home" {
		t.Fatalf("unexpected edit form %+v", edit)
	}
}
