// Package show prints the month, week and day layouts to a terminal.
package show

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/view"
)

// Show renders one layout.
type Show struct {
	Service *app.Service
	Mode    calendar.ViewMode
	// Date defaults to today.
	Date time.Time
	// AllHours prints empty hour rows in the day layout.
	AllHours bool
	Out      io.Writer
}

// Do executes the show.
func (s *Show) Do(_ context.Context) error {
	if s.Service == nil {
		return errors.New("show: no service configured")
	}
	date := s.Date
	if date.IsZero() {
		date = s.Service.Clock()
	}
	w := s.Out
	if w == nil {
		w = os.Stdout
	}
	in := s.Service.ViewInput(date)
	header := view.Header(date, s.Mode)
	pp := printers.New(w, false)

	switch s.Mode {
	case calendar.ViewDay:
		pp.Day(header, view.Day(in), s.AllHours)
	case calendar.ViewWeek:
		pp.Week(header, view.Week(in))
	default:
		pp.Month(header, view.Month(in))
	}
	return nil
}
