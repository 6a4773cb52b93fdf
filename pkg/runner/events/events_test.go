package events

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/app/apptest"
	"tableflip.dev/daybook/pkg/editor"
)

func TestAddDefaultsToNextHour(t *testing.T) {
	ctx := context.Background()
	svc := apptest.SignedIn(t)
	var out bytes.Buffer

	add := &Add{Service: svc, Patch: editor.EventPatch{Title: "Focus time"}, Out: &out}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	events := svc.Events(app.EventQuery{})
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	start := events[0].Start()
	if start.Hour() != apptest.Now.Hour()+1 || start.Minute() != 0 || events[0].End().Sub(start) != time.Hour {
		t.Fatalf("expected a one hour event at the next hour, got %s", events[0])
	}
	if !strings.Contains(out.String(), "Created event") || !strings.Contains(out.String(), "Focus time") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestAddOnAnotherDayStartsAtNine(t *testing.T) {
	svc := apptest.SignedIn(t)
	add := &Add{Service: svc, Patch: editor.EventPatch{Title: "Trip", Date: "2024-06-01"}, Out: &bytes.Buffer{}}
	if err := add.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	ev := svc.Events(app.EventQuery{})[0]
	if got := ev.Start().Format("2006-01-02 15:04"); got != "2024-06-01 09:00" {
		t.Fatalf("expected 09:00 on June 1, got %s", got)
	}
}

func TestAddValidation(t *testing.T) {
	svc := apptest.SignedIn(t)
	add := &Add{Service: svc, Patch: editor.EventPatch{Title: "Oops", Start: "10:00", End: "09:30"}, Out: &bytes.Buffer{}}
	err := add.Do(context.Background())
	if !errors.Is(err, editor.ErrEndBeforeStart) {
		t.Fatalf("expected end before start, got %v", err)
	}
	if n := len(svc.Events(app.EventQuery{IncludeHidden: true})); n != 0 {
		t.Fatalf("nothing should be stored, got %d events", n)
	}
}

func TestAllDayEvent(t *testing.T) {
	svc := apptest.SignedIn(t)
	allDay := true
	add := &Add{Service: svc, Patch: editor.EventPatch{Title: "Holiday", Date: "2024-05-20", EndDate: "2024-05-21", AllDay: &allDay}, Out: &bytes.Buffer{}}
	if err := add.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	ev := svc.Events(app.EventQuery{})[0]
	if !ev.IsAllDay || ev.Start().Hour() != 0 || ev.End().Day() != 21 || ev.End().Hour() != 23 {
		t.Fatalf("unexpected all-day span %s → %s", ev.Start(), ev.End())
	}
}

func TestEditListDelete(t *testing.T) {
	ctx := context.Background()
	svc := apptest.SignedIn(t)
	if err := (&Add{Service: svc, Patch: editor.EventPatch{Title: "Lunch", Date: "2024-05-15", Start: "12:00"}, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := (&Add{Service: svc, Patch: editor.EventPatch{Title: "Dinner", Date: "2024-05-16", Start: "19:00"}, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	lunch := svc.Events(app.EventQuery{})[0]

	if err := (&Edit{Service: svc, Ref: lunch.ID[:8], Patch: editor.EventPatch{End: "13:30"}, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	edited, _ := svc.FindEvent(lunch.ID)
	if edited.End().Sub(edited.Start()) != 90*time.Minute {
		t.Fatalf("expected 90 minutes, got %s", edited.End().Sub(edited.Start()))
	}

	var out bytes.Buffer
	day := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.Local)
	list := &List{Service: svc, From: day, To: day.Add(24*time.Hour - time.Second), Out: &out}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "Lunch") || strings.Contains(out.String(), "Dinner") {
		t.Fatalf("expected only lunch:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "2024-05-15 12:00–13:30") {
		t.Fatalf("expected edited time range:\n%s", out.String())
	}

	if err := (&Delete{Service: svc, Ref: lunch.ID, Confirmer: editor.Always, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.FindEvent(lunch.ID); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected lunch deleted, got %v", err)
	}
}
