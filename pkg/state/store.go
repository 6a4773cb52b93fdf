package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/store"
)

var (
	// ErrDefaultCalendar is returned when deleting the default calendar.
	ErrDefaultCalendar = errors.New("state: the default calendar cannot be deleted")
	// ErrCalendarNotFound is returned by actions that need an existing calendar.
	ErrCalendarNotFound = errors.New("state: calendar not found")
)

// Listener observes every state change.
type Listener func(calendar.State)

// Options tune a Store.
type Options struct {
	// Now is the clock used for timestamps and the initial selected date.
	Now func() time.Time
}

// Store owns the calendar state tree. It is safe for concurrent use;
// mutating actions run one at a time.
type Store struct {
	persistence store.Persistence
	now         func() time.Time

	// actionMu serializes persist+reload cycles so reloads land in order.
	actionMu sync.Mutex

	mu        sync.RWMutex
	state     calendar.State
	listeners map[int]Listener
	nextID    int
}

// New creates a store over p. Call LoadData before rendering.
func New(p store.Persistence, opts Options) *Store {
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		persistence: p,
		now:         clock,
		state:       Initial(clock()),
		listeners:   make(map[int]Listener),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() calendar.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Subscribe registers l for state changes and returns the unsubscribe func.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies actions in order and notifies listeners once.
func (s *Store) Dispatch(actions ...Action) {
	s.mu.Lock()
	for _, a := range actions {
		logging.Debug("state: dispatch", "action", a.Describe())
		s.state = Reduce(s.state, a)
	}
	snapshot := cloneState(s.state)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// LoadData reads calendars and events. When no calendar exists a default
// "Personal" calendar is created and persisted first.
func (s *Store) LoadData(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	calendars := s.persistence.GetCalendars(ctx)
	events := s.persistence.GetEvents(ctx)

	if len(calendars) == 0 {
		def := calendar.NewDefaultCalendar(s.now())
		if err := s.persistence.AddCalendar(ctx, def); err != nil {
			logging.Error("state: create default calendar", err)
			return fmt.Errorf("state: create default calendar: %w", err)
		}
		calendars = []calendar.Calendar{def}
	}

	s.Dispatch(SetCalendars{Calendars: calendars}, SetEvents{Events: events})
	return nil
}

// Refresh re-reads both lists without creating a default calendar.
func (s *Store) Refresh(ctx context.Context) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.Dispatch(
		SetCalendars{Calendars: s.persistence.GetCalendars(ctx)},
		SetEvents{Events: s.persistence.GetEvents(ctx)},
	)
}

// AddCalendar creates a visible, non-default calendar.
func (s *Store) AddCalendar(ctx context.Context, data calendar.CreateCalendarData) (calendar.Calendar, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	c := calendar.NewCalendar(data, s.now())
	if err := s.persistence.AddCalendar(ctx, c); err != nil {
		logging.Error("state: add calendar", err, "name", data.Name)
		return calendar.Calendar{}, err
	}
	s.reloadCalendars(ctx)
	return c, nil
}

// UpdateCalendar stores c with a fresh UpdatedAt. The default flag is kept
// from the stored record.
func (s *Store) UpdateCalendar(ctx context.Context, c calendar.Calendar) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.updateCalendarLocked(ctx, c)
}

func (s *Store) updateCalendarLocked(ctx context.Context, c calendar.Calendar) error {
	for _, existing := range s.persistence.GetCalendars(ctx) {
		if existing.ID == c.ID {
			c.IsDefault = existing.IsDefault
			break
		}
	}
	c.UpdatedAt = calendar.Timestamp{Time: s.now()}
	if err := s.persistence.UpdateCalendar(ctx, c); err != nil {
		logging.Error("state: update calendar", err, "id", c.ID)
		return err
	}
	s.reloadCalendars(ctx)
	return nil
}

// DeleteCalendar removes a calendar and its events.
func (s *Store) DeleteCalendar(ctx context.Context, id string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	for _, c := range s.persistence.GetCalendars(ctx) {
		if c.ID == id && c.IsDefault {
			return ErrDefaultCalendar
		}
	}
	if err := s.persistence.DeleteCalendar(ctx, id); err != nil {
		logging.Error("state: delete calendar", err, "id", id)
		return err
	}
	s.Dispatch(
		SetCalendars{Calendars: s.persistence.GetCalendars(ctx)},
		SetEvents{Events: s.persistence.GetEvents(ctx)},
	)
	return nil
}

// ToggleCalendarVisibility flips IsVisible on the calendar in the current
// state. The visible set is re-derived when the list reloads.
func (s *Store) ToggleCalendarVisibility(ctx context.Context, id string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	c, ok := s.State().FindCalendar(id)
	if !ok {
		return ErrCalendarNotFound
	}
	c.IsVisible = !c.IsVisible
	return s.updateCalendarLocked(ctx, c)
}

// AddEvent creates an event. Referential and ordering checks belong to the
// editor; the store writes what it is given.
func (s *Store) AddEvent(ctx context.Context, data calendar.CreateEventData) (calendar.Event, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	e := calendar.NewEvent(data, s.now())
	if err := s.persistence.AddEvent(ctx, e); err != nil {
		logging.Error("state: add event", err, "title", data.Title)
		return calendar.Event{}, err
	}
	s.reloadEvents(ctx)
	return e, nil
}

// UpdateEvent stores e with a fresh UpdatedAt.
func (s *Store) UpdateEvent(ctx context.Context, e calendar.Event) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	e.UpdatedAt = calendar.Timestamp{Time: s.now()}
	if err := s.persistence.UpdateEvent(ctx, e); err != nil {
		logging.Error("state: update event", err, "id", e.ID)
		return err
	}
	s.reloadEvents(ctx)
	return nil
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	if err := s.persistence.DeleteEvent(ctx, id); err != nil {
		logging.Error("state: delete event", err, "id", id)
		return err
	}
	s.reloadEvents(ctx)
	return nil
}

// SetSelectedDate moves the navigation cursor.
func (s *Store) SetSelectedDate(date time.Time) {
	s.Dispatch(SetSelectedDate{Date: date})
}

// SetViewMode switches the view.
func (s *Store) SetViewMode(mode calendar.ViewMode) {
	s.Dispatch(SetViewMode{Mode: mode})
}

// ClearAllData wipes both blobs and reloads, which recreates the default
// calendar.
func (s *Store) ClearAllData(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	if err := s.persistence.ClearAllData(ctx); err != nil {
		logging.Error("state: clear all data", err)
		return err
	}
	s.Dispatch(SetCalendars{Calendars: nil}, SetEvents{Events: nil})
	return s.loadLocked(ctx)
}

// Watch reloads state whenever the persisted blobs change on disk, until ctx
// is done.
func (s *Store) Watch(ctx context.Context) error {
	ch, err := s.persistence.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for ev := range ch {
			switch ev.Key {
			case store.CalendarsKey, store.EventsKey, "":
				logging.Debug("state: external change", "key", ev.Key)
				s.Refresh(ctx)
			}
		}
	}()
	return nil
}

func (s *Store) reloadCalendars(ctx context.Context) {
	s.Dispatch(SetCalendars{Calendars: s.persistence.GetCalendars(ctx)})
}

func (s *Store) reloadEvents(ctx context.Context) {
	s.Dispatch(SetEvents{Events: s.persistence.GetEvents(ctx)})
}

func cloneState(st calendar.State) calendar.State {
	st.Calendars = append([]calendar.Calendar{}, st.Calendars...)
	st.Events = append([]calendar.Event{}, st.Events...)
	st.SelectedCalendarIDs = append([]string{}, st.SelectedCalendarIDs...)
	return st
}
