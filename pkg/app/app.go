// Package app wires configuration, persistence, the state store and the auth
// gate so the CLI, the terminal UI and the MCP server share one setup.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
	"tableflip.dev/daybook/pkg/editor"
	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/state"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/view"
)

var (
	ErrNotFound  = errors.New("app: not found")
	ErrAmbiguous = errors.New("app: ambiguous reference")
)

// Service provides high-level operations over calendars and events.
type Service struct {
	Config      store.Config
	Persistence store.Persistence
	Store       *state.Store
	Gate        *auth.Gate
	Now         func() time.Time
}

// Options tune Open.
type Options struct {
	// Config defaults to store.LoadConfig().
	Config store.Config
	Now    func() time.Time
}

// Open loads the config, opens persistence and resolves the stored session.
// Calendar data is not loaded until Require succeeds.
func Open(ctx context.Context, opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = store.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel()))

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	s := &Service{
		Config:      cfg,
		Persistence: p,
		Store:       state.New(p, state.Options{Now: clock}),
		Gate:        auth.NewGate(auth.NewLocal(p, auth.LocalOptions{Now: clock})),
		Now:         clock,
	}
	if err := s.Gate.Resolve(ctx); err != nil {
		return nil, fmt.Errorf("app: resolve session: %w", err)
	}
	return s, nil
}

// Require fails unless a user is signed in, then loads calendar data.
func (s *Service) Require(ctx context.Context) error {
	if err := s.Gate.Require(); err != nil {
		return err
	}
	return s.Store.LoadData(ctx)
}

// Clock returns the current time on the service clock.
func (s *Service) Clock() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Calendars returns calendars with the default first, then by name.
func (s *Service) Calendars() []calendar.Calendar {
	cals := s.Store.State().Calendars
	sort.SliceStable(cals, func(i, j int) bool {
		if cals[i].IsDefault != cals[j].IsDefault {
			return cals[i].IsDefault
		}
		return strings.ToLower(cals[i].Name) < strings.ToLower(cals[j].Name)
	})
	return cals
}

// FindCalendar resolves ref as an id, an id prefix or a case-insensitive
// name.
func (s *Service) FindCalendar(ref string) (calendar.Calendar, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return calendar.Calendar{}, fmt.Errorf("%w: empty calendar reference", ErrNotFound)
	}
	cals := s.Store.State().Calendars
	var matches []calendar.Calendar
	for _, c := range cals {
		if c.ID == ref {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) || strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	return pick(matches, "calendar", ref)
}

// FindEvent resolves ref as an event id or id prefix.
func (s *Service) FindEvent(ref string) (calendar.Event, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return calendar.Event{}, fmt.Errorf("%w: empty event reference", ErrNotFound)
	}
	var matches []calendar.Event
	for _, ev := range s.Store.State().Events {
		if ev.ID == ref {
			return ev, nil
		}
		if strings.HasPrefix(ev.ID, ref) {
			matches = append(matches, ev)
		}
	}
	return pick(matches, "event", ref)
}

func pick[T any](matches []T, kind, ref string) (T, error) {
	var zero T
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%w: %s %q", ErrNotFound, kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%w: %d %ss match %q", ErrAmbiguous, len(matches), kind, ref)
	}
}

// EventQuery filters Events.
type EventQuery struct {
	// From and To bound the range; zero values leave that side open.
	From time.Time
	To   time.Time
	// CalendarID limits results to one calendar.
	CalendarID string
	// IncludeHidden keeps events of calendars that are not visible.
	IncludeHidden bool
}

// Events returns matching events sorted by start time.
func (s *Service) Events(q EventQuery) []calendar.Event {
	st := s.Store.State()
	events := st.Events
	if !q.IncludeHidden {
		events = view.VisibleEvents(st)
	}
	out := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		if q.CalendarID != "" && ev.CalendarID != q.CalendarID {
			continue
		}
		if !q.From.IsZero() && ev.End().Before(q.From) {
			continue
		}
		if !q.To.IsZero() && ev.Start().After(q.To) {
			continue
		}
		out = append(out, ev)
	}
	return dateutil.SortEventsByTime(out)
}

// ViewInput is the render input for date, or the selected date when zero.
func (s *Service) ViewInput(date time.Time) view.Input {
	return view.Input{Date: date, State: s.Store.State(), Now: s.Clock()}
}

func (s *Service) calendarID(ref string) (string, error) {
	c, err := s.FindCalendar(ref)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// NewEventForm seeds a create form from p. Without p.Start the event starts
// at hour on p.Date, or today, and lasts one hour.
func (s *Service) NewEventForm(p editor.EventPatch, hour int) (*editor.EventForm, error) {
	now := s.Clock()
	start := now
	if p.Date != "" {
		day, err := dateutil.ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		start = day
	}
	opts := editor.EventFormOptions{InitialDate: start, Now: now}
	if p.Start != "" {
		t, err := dateutil.DateFromTimeString(start, p.Start)
		if err != nil {
			return nil, err
		}
		opts.InitialDate = t
	} else {
		opts.InitialHour = &hour
	}
	form := editor.NewEventForm(s.Store.State(), opts)
	// The seeded times already reflect Date and Start.
	p.Date, p.Start = "", ""
	if err := p.Apply(form, s.calendarID); err != nil {
		return nil, err
	}
	return form, nil
}

// EditEventForm seeds an edit form for the event ref and applies p.
func (s *Service) EditEventForm(ref string, p editor.EventPatch) (*editor.EventForm, error) {
	ev, err := s.FindEvent(ref)
	if err != nil {
		return nil, err
	}
	form := editor.NewEventForm(s.Store.State(), editor.EventFormOptions{Event: &ev})
	if err := p.Apply(form, s.calendarID); err != nil {
		return nil, err
	}
	return form, nil
}
