package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/store"
)

var fixedNow = time.Date(2024, time.May, 15, 9, 30, 0, 0, time.Local)

func newTestStore(t *testing.T) (*Store, store.Persistence) {
	t.Helper()
	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return New(p, Options{Now: func() time.Time { return fixedNow }}), p
}

// failingPersistence fails every write once armed.
type failingPersistence struct {
	store.Persistence
	fail bool
}

var errDisk = errors.New("disk full")

func (f *failingPersistence) AddCalendar(ctx context.Context, c calendar.Calendar) error {
	if f.fail {
		return errDisk
	}
	return f.Persistence.AddCalendar(ctx, c)
}

func (f *failingPersistence) AddEvent(ctx context.Context, e calendar.Event) error {
	if f.fail {
		return errDisk
	}
	return f.Persistence.AddEvent(ctx, e)
}

func TestReduceSetCalendarsDerivesSelection(t *testing.T) {
	s := Initial(fixedNow)
	s = Reduce(s, SetCalendars{Calendars: []calendar.Calendar{
		{ID: "a", IsVisible: true},
		{ID: "b", IsVisible: false},
		{ID: "c", IsVisible: true},
	}})
	if len(s.SelectedCalendarIDs) != 2 || s.SelectedCalendarIDs[0] != "a" || s.SelectedCalendarIDs[1] != "c" {
		t.Fatalf("unexpected selection %v", s.SelectedCalendarIDs)
	}
	s = Reduce(s, SetViewMode{Mode: calendar.ViewWeek})
	if s.ViewMode != calendar.ViewWeek {
		t.Fatalf("view mode not applied: %s", s.ViewMode)
	}
}

func TestLoadDataCreatesDefaultCalendar(t *testing.T) {
	st, p := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := st.State()
	if len(got.Calendars) != 1 {
		t.Fatalf("expected one calendar, got %d", len(got.Calendars))
	}
	def := got.Calendars[0]
	if def.Name != "Personal" || def.Color != "#45B7D1" || !def.IsDefault || !def.IsVisible {
		t.Fatalf("unexpected default calendar %+v", def)
	}
	if len(p.GetCalendars(ctx)) != 1 {
		t.Fatalf("default calendar not persisted")
	}
	if !got.IsCalendarSelected(def.ID) {
		t.Fatalf("default calendar should be selected")
	}

	// A second load must not create another default.
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := len(st.State().Calendars); n != 1 {
		t.Fatalf("expected one calendar after reload, got %d", n)
	}
}

func TestLoadDataFailsWhenDefaultCannotPersist(t *testing.T) {
	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	st := New(&failingPersistence{Persistence: p, fail: true}, Options{})
	if err := st.LoadData(context.Background()); !errors.Is(err, errDisk) {
		t.Fatalf("expected disk error, got %v", err)
	}
}

func TestToggleVisibilityUpdatesSelection(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	work, err := st.AddCalendar(ctx, calendar.CreateCalendarData{Name: "Work", Color: "#FF6B6B"})
	if err != nil {
		t.Fatalf("add calendar: %v", err)
	}
	if !st.State().IsCalendarSelected(work.ID) {
		t.Fatalf("new calendar should be visible")
	}
	if err := st.ToggleCalendarVisibility(ctx, work.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if st.State().IsCalendarSelected(work.ID) {
		t.Fatalf("calendar should be hidden after toggle")
	}
	if err := st.ToggleCalendarVisibility(ctx, "missing"); !errors.Is(err, ErrCalendarNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteDefaultCalendarIsRejected(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	def, _ := st.State().DefaultCalendar()
	if err := st.DeleteCalendar(ctx, def.ID); !errors.Is(err, ErrDefaultCalendar) {
		t.Fatalf("expected ErrDefaultCalendar, got %v", err)
	}

	// Clearing the flag through an update is ignored.
	def.IsDefault = false
	def.Name = "Home"
	if err := st.UpdateCalendar(ctx, def); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := st.State().FindCalendar(def.ID)
	if !got.IsDefault || got.Name != "Home" {
		t.Fatalf("unexpected calendar after update %+v", got)
	}
}

func TestDeleteCalendarCascadesEvents(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	work, err := st.AddCalendar(ctx, calendar.CreateCalendarData{Name: "Work", Color: "#FF6B6B"})
	if err != nil {
		t.Fatalf("add calendar: %v", err)
	}
	def, _ := st.State().DefaultCalendar()
	for _, calID := range []string{work.ID, work.ID, def.ID} {
		if _, err := st.AddEvent(ctx, calendar.CreateEventData{
			Title:      "meeting",
			StartDate:  fixedNow,
			EndDate:    fixedNow.Add(time.Hour),
			CalendarID: calID,
		}); err != nil {
			t.Fatalf("add event: %v", err)
		}
	}
	if err := st.DeleteCalendar(ctx, work.ID); err != nil {
		t.Fatalf("delete calendar: %v", err)
	}
	got := st.State()
	if len(got.Calendars) != 1 || len(got.Events) != 1 {
		t.Fatalf("expected 1 calendar and 1 event, got %d and %d", len(got.Calendars), len(got.Events))
	}
	if got.Events[0].CalendarID != def.ID {
		t.Fatalf("wrong event survived: %+v", got.Events[0])
	}
}

func TestEventLifecycle(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	def, _ := st.State().DefaultCalendar()
	ev, err := st.AddEvent(ctx, calendar.CreateEventData{
		Title:      "standup",
		StartDate:  fixedNow,
		EndDate:    fixedNow.Add(15 * time.Minute),
		CalendarID: def.ID,
	})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if !ev.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected created at from clock, got %v", ev.CreatedAt)
	}

	ev.Title = "retro"
	if err := st.UpdateEvent(ctx, ev); err != nil {
		t.Fatalf("update event: %v", err)
	}
	got, ok := st.State().FindEvent(ev.ID)
	if !ok || got.Title != "retro" {
		t.Fatalf("update not visible: %+v", got)
	}

	if err := st.DeleteEvent(ctx, ev.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if _, ok := st.State().FindEvent(ev.ID); ok {
		t.Fatalf("event should be gone")
	}
}

func TestAddEventFailureLeavesStateUntouched(t *testing.T) {
	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	fp := &failingPersistence{Persistence: p}
	st := New(fp, Options{})
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	fp.fail = true
	if _, err := st.AddEvent(ctx, calendar.CreateEventData{Title: "x"}); !errors.Is(err, errDisk) {
		t.Fatalf("expected disk error, got %v", err)
	}
	if n := len(st.State().Events); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
}

func TestClearAllDataRecreatesDefault(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	first, _ := st.State().DefaultCalendar()
	if _, err := st.AddCalendar(ctx, calendar.CreateCalendarData{Name: "Work", Color: "#FF6B6B"}); err != nil {
		t.Fatalf("add calendar: %v", err)
	}
	if err := st.ClearAllData(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got := st.State()
	if len(got.Calendars) != 1 || len(got.Events) != 0 {
		t.Fatalf("expected fresh default only, got %d calendars %d events", len(got.Calendars), len(got.Events))
	}
	if got.Calendars[0].ID == first.ID {
		t.Fatalf("expected a new default calendar id")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	st, _ := newTestStore(t)
	var mu sync.Mutex
	var modes []calendar.ViewMode
	cancel := st.Subscribe(func(s calendar.State) {
		mu.Lock()
		defer mu.Unlock()
		modes = append(modes, s.ViewMode)
	})
	st.SetViewMode(calendar.ViewDay)
	cancel()
	st.SetViewMode(calendar.ViewWeek)

	mu.Lock()
	defer mu.Unlock()
	if len(modes) != 1 || modes[0] != calendar.ViewDay {
		t.Fatalf("unexpected notifications %v", modes)
	}
}

func TestConcurrentAddsAreAllVisible(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	if err := st.LoadData(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	def, _ := st.State().DefaultCalendar()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.AddEvent(ctx, calendar.CreateEventData{
				Title:      "parallel",
				StartDate:  fixedNow,
				EndDate:    fixedNow.Add(time.Hour),
				CalendarID: def.ID,
			}); err != nil {
				t.Errorf("add event: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := len(st.State().Events); n != 8 {
		t.Fatalf("expected 8 events, got %d", n)
	}
}
