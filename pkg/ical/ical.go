// Package ical converts calendar events to and from iCalendar (RFC 5545).
package ical

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
	"tableflip.dev/daybook/pkg/logging"
)

const (
	productID      = "-//tableflip.dev//daybook//EN"
	propertyCalID  = "X-DAYBOOK-CALENDAR"
	propertyRemind = "X-DAYBOOK-REMINDER"
)

// Export writes events as a single VCALENDAR. Each event carries its
// calendar's name as a category.
func Export(w io.Writer, calendars []calendar.Calendar, events []calendar.Event, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if len(calendars) == 1 {
		cal.SetXWRCalName(calendars[0].Name)
		cal.SetColor(calendars[0].Color)
	}

	names := make(map[string]string, len(calendars))
	for _, c := range calendars {
		names[c.ID] = c.Name
	}

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(now)
		ve.SetCreatedTime(ev.CreatedAt.Time)
		ve.SetModifiedAt(ev.UpdatedAt.Time)
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if name, ok := names[ev.CalendarID]; ok {
			ve.SetProperty(ics.ComponentPropertyCategories, name)
		}
		ve.SetProperty(ics.ComponentProperty(propertyCalID), ev.CalendarID)
		if ev.Reminder != nil {
			ve.SetProperty(ics.ComponentProperty(propertyRemind), fmt.Sprint(*ev.Reminder))
		}

		if ev.IsAllDay {
			// DTEND is exclusive for all-day events.
			ve.SetAllDayStartAt(dateutil.DayStart(ev.Start()))
			ve.SetAllDayEndAt(dateutil.DayStart(ev.End()).AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(ev.Start())
			ve.SetEndAt(ev.End())
		}
	}

	return cal.SerializeTo(w)
}

// Import parses an iCalendar payload into events for calendarID. Components
// without a usable DTSTART are skipped.
func Import(r io.Reader, calendarID string) ([]calendar.CreateEventData, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ical: read: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("ical: empty calendar")
	}
	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		logging.Error("ical: parse failed", err)
		return nil, fmt.Errorf("ical: parse: %w", err)
	}

	out := make([]calendar.CreateEventData, 0)
	for _, ve := range cal.Events() {
		data, err := fromVEvent(ve, calendarID)
		if err != nil {
			logging.Error("ical: skipping event", err)
			continue
		}
		out = append(out, data)
	}
	logging.Info("ical: import parsed", "event_count", len(out))
	return out, nil
}

func fromVEvent(ve *ics.VEvent, calendarID string) (calendar.CreateEventData, error) {
	data := calendar.CreateEventData{CalendarID: calendarID}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		data.Title = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
		data.Description = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyLocation); p != nil {
		data.Location = p.Value
	}
	if strings.TrimSpace(data.Title) == "" {
		data.Title = "(untitled)"
	}

	dtStart := ve.GetProperty(ics.ComponentPropertyDtStart)
	if dtStart == nil {
		return data, errors.New("missing DTSTART")
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return data, fmt.Errorf("DTSTART: %w", err)
	}
	data.IsAllDay = isDateValue(dtStart)

	end, endErr := ve.GetEndAt()
	if data.IsAllDay {
		data.StartDate = localDay(start)
		last := data.StartDate
		if endErr == nil {
			// Exclusive DTEND back to the last covered day.
			last = localDay(end).AddDate(0, 0, -1)
			if last.Before(data.StartDate) {
				last = data.StartDate
			}
		}
		data.EndDate = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
		return data, nil
	}

	data.StartDate = start.Local()
	if endErr != nil || !end.After(start) {
		data.EndDate = data.StartDate.Add(time.Hour)
	} else {
		data.EndDate = end.Local()
	}
	return data, nil
}

func isDateValue(p *ics.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
