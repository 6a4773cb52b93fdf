package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
)

func newTestPersistence(t *testing.T) (Persistence, string) {
	t.Helper()
	base := t.TempDir()
	p, err := Load(NewConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p, base
}

func testEvent(id, calendarID string, start time.Time) calendar.Event {
	return calendar.Event{
		ID:         id,
		Title:      id,
		CalendarID: calendarID,
		StartDate:  calendar.Timestamp{Time: start},
		EndDate:    calendar.Timestamp{Time: start.Add(time.Hour)},
		CreatedAt:  calendar.Timestamp{Time: start},
		UpdatedAt:  calendar.Timestamp{Time: start},
	}
}

func TestEmptyStoreReturnsEmptyLists(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	if got := p.GetCalendars(ctx); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil calendars, got %#v", got)
	}
	if got := p.GetEvents(ctx); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil events, got %#v", got)
	}
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	p, base := newTestPersistence(t)
	if err := os.WriteFile(filepath.Join(base, EventsKey), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}
	if got := p.GetEvents(context.Background()); len(got) != 0 {
		t.Fatalf("expected corrupt blob to read as empty, got %d", len(got))
	}
}

func TestEventDatesAreRehydrated(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	start := time.Date(2024, time.May, 1, 14, 0, 0, 0, time.UTC)
	if err := p.AddEvent(ctx, testEvent("e1", "c1", start)); err != nil {
		t.Fatalf("add event: %v", err)
	}
	got := p.GetEvents(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if !got[0].Start().Equal(start) || !got[0].End().Equal(start.Add(time.Hour)) {
		t.Fatalf("dates not rehydrated: %v - %v", got[0].Start(), got[0].End())
	}
}

func TestUpdateReplacesByIDAndIgnoresUnknown(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	c := calendar.Calendar{ID: "c1", Name: "Work", Color: "#FF6B6B", IsVisible: true}
	if err := p.AddCalendar(ctx, c); err != nil {
		t.Fatalf("add calendar: %v", err)
	}
	c.Name = "Office"
	if err := p.UpdateCalendar(ctx, c); err != nil {
		t.Fatalf("update calendar: %v", err)
	}
	if err := p.UpdateCalendar(ctx, calendar.Calendar{ID: "missing", Name: "Ghost"}); err != nil {
		t.Fatalf("update unknown calendar: %v", err)
	}
	got := p.GetCalendars(ctx)
	if len(got) != 1 || got[0].Name != "Office" {
		t.Fatalf("unexpected calendars: %+v", got)
	}
}

func TestDeleteCalendarCascadesToEvents(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	now := time.Now()
	for _, id := range []string{"keep", "drop"} {
		if err := p.AddCalendar(ctx, calendar.Calendar{ID: id, Name: id}); err != nil {
			t.Fatalf("add calendar: %v", err)
		}
	}
	for i, cal := range []string{"keep", "drop", "drop", "keep"} {
		if err := p.AddEvent(ctx, testEvent(string(rune('a'+i)), cal, now)); err != nil {
			t.Fatalf("add event: %v", err)
		}
	}

	if err := p.DeleteCalendar(ctx, "drop"); err != nil {
		t.Fatalf("delete calendar: %v", err)
	}

	cals := p.GetCalendars(ctx)
	if len(cals) != 1 || cals[0].ID != "keep" {
		t.Fatalf("unexpected calendars after delete: %+v", cals)
	}
	for _, e := range p.GetEvents(ctx) {
		if e.CalendarID == "drop" {
			t.Fatalf("event %s survived calendar delete", e.ID)
		}
	}
	if n := len(p.GetEvents(ctx)); n != 2 {
		t.Fatalf("expected 2 remaining events, got %d", n)
	}
}

func TestDeleteEvent(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	now := time.Now()
	_ = p.AddEvent(ctx, testEvent("a", "c", now))
	_ = p.AddEvent(ctx, testEvent("b", "c", now))
	if err := p.DeleteEvent(ctx, "a"); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	got := p.GetEvents(ctx)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestClearAllData(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	if err := p.ClearAllData(ctx); err != nil {
		t.Fatalf("clear empty store: %v", err)
	}
	_ = p.AddCalendar(ctx, calendar.Calendar{ID: "c"})
	_ = p.AddEvent(ctx, testEvent("e", "c", time.Now()))
	if err := p.WriteBlob("auth/accounts", []byte("[]")); err != nil {
		t.Fatalf("write blob: %v", err)
	}
	if err := p.ClearAllData(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(p.GetCalendars(ctx)) != 0 || len(p.GetEvents(ctx)) != 0 {
		t.Fatalf("expected empty store after clear")
	}
	if _, err := p.ReadBlob("auth/accounts"); err != nil {
		t.Fatalf("clear must not touch other blobs: %v", err)
	}
}

func TestConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	p, _ := newTestPersistence(t)
	ctx := context.Background()
	done := make(chan error)
	for i := 0; i < 10; i++ {
		go func(i int) {
			done <- p.AddEvent(ctx, testEvent(string(rune('a'+i)), "c", time.Now()))
		}(i)
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Fatalf("add event: %v", err)
		}
	}
	if n := len(p.GetEvents(ctx)); n != 10 {
		t.Fatalf("expected 10 events, got %d", n)
	}
}
