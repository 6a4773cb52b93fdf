// Package mcp provides the Model Context Protocol server integration for daybook.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
	"tableflip.dev/daybook/pkg/editor"
)

// Service coordinates calendar operations that are shared by the MCP server.
type Service struct {
	App *app.Service
}

var errNotConfigured = errors.New("calendar service is not configured")

// CalendarDTO is a transport-friendly projection of a calendar.
type CalendarDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsVisible  bool   `json:"isVisible"`
	IsDefault  bool   `json:"isDefault"`
	EventCount int    `json:"eventCount"`
}

// EventDTO is a transport-friendly projection of an event.
type EventDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Location     string `json:"location,omitempty"`
	CalendarID   string `json:"calendarId"`
	CalendarName string `json:"calendarName"`
	IsAllDay     bool   `json:"isAllDay"`
	StartISO     string `json:"start"`
	EndISO       string `json:"end"`
	StartUnix    int64  `json:"startUnix"`
	EndUnix      int64  `json:"endUnix"`
	Reminder     *int   `json:"reminder,omitempty"`
}

// NewService wraps an opened app service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errNotConfigured
	}
	return s.App.Gate.Require()
}

// ListCalendars returns every calendar with its event count.
func (s *Service) ListCalendars(_ context.Context) ([]CalendarDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, ev := range s.App.Store.State().Events {
		counts[ev.CalendarID]++
	}
	cals := s.App.Calendars()
	out := make([]CalendarDTO, 0, len(cals))
	for _, c := range cals {
		out = append(out, CalendarDTO{
			ID:         c.ID,
			Name:       c.Name,
			Color:      c.Color,
			IsVisible:  c.IsVisible,
			IsDefault:  c.IsDefault,
			EventCount: counts[c.ID],
		})
	}
	return out, nil
}

// ListEvents returns events between from and to (YYYY-MM-DD, inclusive).
// Empty bounds are open. Hidden calendars are included.
func (s *Service) ListEvents(_ context.Context, from, to, calendarRef string) ([]EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := app.EventQuery{IncludeHidden: true}
	if strings.TrimSpace(from) != "" {
		d, err := dateutil.ParseDate(from)
		if err != nil {
			return nil, err
		}
		q.From = dateutil.DayStart(d)
	}
	if strings.TrimSpace(to) != "" {
		d, err := dateutil.ParseDate(to)
		if err != nil {
			return nil, err
		}
		q.To = dateutil.DayEnd(d)
	}
	if strings.TrimSpace(calendarRef) != "" {
		c, err := s.App.FindCalendar(calendarRef)
		if err != nil {
			return nil, err
		}
		q.CalendarID = c.ID
	}
	return s.toDTOs(s.App.Events(q)), nil
}

// EventsOn returns the visible events on date, as the day view shows them.
func (s *Service) EventsOn(_ context.Context, date string) ([]EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	events := s.App.Events(app.EventQuery{From: dateutil.DayStart(d), To: dateutil.DayEnd(d)})
	return s.toDTOs(dateutil.EventsForDate(events, d)), nil
}

// SearchEvents matches query against titles, descriptions and locations.
func (s *Service) SearchEvents(_ context.Context, query string, limit int) ([]EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return []EventDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	var matched []calendar.Event
	for _, ev := range s.App.Events(app.EventQuery{IncludeHidden: true}) {
		if len(matched) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(ev.Title), q) ||
			strings.Contains(strings.ToLower(ev.Description), q) ||
			strings.Contains(strings.ToLower(ev.Location), q) {
			matched = append(matched, ev)
		}
	}
	return s.toDTOs(matched), nil
}

// EventByID locates an event by id or id prefix.
func (s *Service) EventByID(_ context.Context, id string) (*EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ev, err := s.App.FindEvent(id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(ev)
	return &dto, nil
}

// AddEvent creates an event through the event form, so the same validation
// applies as in the terminal UI. Without a start time it begins at 9:00.
func (s *Service) AddEvent(ctx context.Context, in editor.EventPatch) (*EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	form, err := s.App.NewEventForm(in, 9)
	if err != nil {
		return nil, err
	}
	ev, err := form.Save(ctx, s.App.Store.State(), s.App.Store)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(ev)
	return &dto, nil
}

// UpdateEvent changes the given fields of an existing event.
func (s *Service) UpdateEvent(ctx context.Context, id string, in editor.EventPatch) (*EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	form, err := s.App.EditEventForm(id, in)
	if err != nil {
		return nil, err
	}
	updated, err := form.Save(ctx, s.App.Store.State(), s.App.Store)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(updated)
	return &dto, nil
}

// DeleteEvent removes an event without asking.
func (s *Service) DeleteEvent(ctx context.Context, id string) (*EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ev, err := s.App.FindEvent(id)
	if err != nil {
		return nil, err
	}
	form := editor.NewEventForm(s.App.Store.State(), editor.EventFormOptions{Event: &ev})
	if err := form.Delete(ctx, s.App.Store, editor.Always); err != nil {
		return nil, err
	}
	dto := s.toDTO(ev)
	return &dto, nil
}

// AddCalendar creates a calendar. An empty color picks one from the palette.
func (s *Service) AddCalendar(ctx context.Context, name, color string) (*CalendarDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	form := editor.NewCalendarForm(nil)
	form.Name = name
	if color != "" {
		form.Color = color
	}
	c, err := form.Save(ctx, s.App.Store)
	if err != nil {
		return nil, err
	}
	return &CalendarDTO{ID: c.ID, Name: c.Name, Color: c.Color, IsVisible: c.IsVisible}, nil
}

// ToggleCalendar flips whether a calendar's events are shown.
func (s *Service) ToggleCalendar(ctx context.Context, ref string) (*CalendarDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	c, err := s.App.FindCalendar(ref)
	if err != nil {
		return nil, err
	}
	if err := s.App.Store.ToggleCalendarVisibility(ctx, c.ID); err != nil {
		return nil, err
	}
	c, ok := s.App.Store.State().FindCalendar(c.ID)
	if !ok {
		return nil, fmt.Errorf("%w: calendar %q", app.ErrNotFound, ref)
	}
	return &CalendarDTO{ID: c.ID, Name: c.Name, Color: c.Color, IsVisible: c.IsVisible, IsDefault: c.IsDefault}, nil
}

func (s *Service) toDTOs(events []calendar.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, s.toDTO(ev))
	}
	return out
}

func (s *Service) toDTO(ev calendar.Event) EventDTO {
	name := ""
	if c, ok := s.App.Store.State().FindCalendar(ev.CalendarID); ok {
		name = c.Name
	}
	return EventDTO{
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		Location:     ev.Location,
		CalendarID:   ev.CalendarID,
		CalendarName: name,
		IsAllDay:     ev.IsAllDay,
		StartISO:     ev.Start().Format(time.RFC3339),
		EndISO:       ev.End().Format(time.RFC3339),
		StartUnix:    ev.Start().Unix(),
		EndUnix:      ev.End().Unix(),
		Reminder:     ev.Reminder,
	}
}
