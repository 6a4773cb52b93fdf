package options

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/editor"
)

var now = time.Date(2024, time.May, 15, 8, 30, 0, 0, time.Local)

func TestParseDay(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		"empty":      {in: "", want: time.Time{}},
		"iso":        {in: "2024-5-20", want: time.Date(2024, time.May, 20, 0, 0, 0, 0, time.Local)},
		"padded iso": {in: "2024-05-02", want: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.Local)},
		"short":      {in: "6/1", want: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)},
		"today":      {in: "5/15", want: time.Date(2024, time.May, 15, 0, 0, 0, 0, time.Local)},
		"past short": {in: "1/3", want: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.Local)},
		"garbage":    {in: "tomorrow", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDay(tc.in, now)
			if (err != nil) != tc.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tc.wantErr)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRangeBounds(t *testing.T) {
	o := &RangeOptions{From: "2024-5-1", To: "2024-5-31"}
	from, to, err := o.Bounds(now)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if from.Day() != 1 || from.Hour() != 0 {
		t.Fatalf("unexpected from %s", from)
	}
	if to.Day() != 31 || to.Hour() != 23 || to.Minute() != 59 {
		t.Fatalf("to should cover the whole last day, got %s", to)
	}

	open := &RangeOptions{}
	from, to, err = open.Bounds(now)
	if err != nil || !from.IsZero() || !to.IsZero() {
		t.Fatalf("unset bounds stay open, got %s %s %v", from, to, err)
	}
}

func TestViewMode(t *testing.T) {
	if m := (&ViewOptions{}).Mode(); m != calendar.ViewMonth {
		t.Fatalf("default mode %q", m)
	}
	if m := (&ViewOptions{Week: true}).Mode(); m != calendar.ViewWeek {
		t.Fatalf("week mode %q", m)
	}
	if m := (&ViewOptions{Day: true}).Mode(); m != calendar.ViewDay {
		t.Fatalf("day mode %q", m)
	}
}

func TestEventPatchOnlyCarriesChangedToggles(t *testing.T) {
	cmd := &cobra.Command{Use: "add"}
	o := &EventOptions{}
	AddEventArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--title", "Lunch", "--start", "12:00"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := o.Patch(cmd, "work")
	if p.Title != "Lunch" || p.Start != "12:00" || p.Calendar != "work" {
		t.Fatalf("unexpected patch %+v", p)
	}
	if p.AllDay != nil || p.Reminder != nil {
		t.Fatalf("unset toggles must stay nil, got %+v", p)
	}

	if err := cmd.ParseFlags([]string{"--all-day", "--reminder", "0"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	p = o.Patch(cmd, "")
	if p.AllDay == nil || !*p.AllDay || p.Reminder == nil || *p.Reminder != 0 {
		t.Fatalf("changed toggles must be set, got %+v", p)
	}
}

func TestErrorKind(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"validation": {err: &editor.ValidationError{Message: "Please enter a title", Err: editor.ErrTitleRequired}, want: "validation"},
		"form":       {err: &auth.FormError{Message: "Please fill in all fields"}, want: "validation"},
		"cancelled":  {err: editor.ErrCancelled, want: "cancelled"},
		"not found":  {err: fmt.Errorf("%w: event %q", app.ErrNotFound, "x"), want: "not_found"},
		"ambiguous":  {err: app.ErrAmbiguous, want: "ambiguous"},
		"signed out": {err: auth.ErrSignedOut, want: "auth"},
		"other":      {err: errors.New("disk full"), want: "error"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ErrorKind(tc.err); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHandleErrorPassesThroughWithoutJSON(t *testing.T) {
	o := &OutputOptions{}
	want := errors.New("boom")
	if got := o.HandleError(want); got != want {
		t.Fatalf("got %v", got)
	}
	if got := (&OutputOptions{JSON: true}).HandleError(want); got != nil {
		t.Fatalf("JSON mode swallows the error, got %v", got)
	}
}
