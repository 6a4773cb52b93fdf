package calendars

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/app/apptest"
	"tableflip.dev/daybook/pkg/editor"
)

func TestAddListToggle(t *testing.T) {
	ctx := context.Background()
	svc := apptest.SignedIn(t)
	var out bytes.Buffer

	add := &Add{Service: svc, Name: "Work", Color: "#FF6B6B", Out: &out}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	toggle := &Toggle{Service: svc, Ref: "work", Out: &out}
	if err := toggle.Do(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	out.Reset()
	list := &List{Service: svc, Out: &out}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	personal := strings.Index(got, "Personal")
	work := strings.Index(got, "Work")
	if personal < 0 || work < 0 || personal > work {
		t.Fatalf("expected default calendar listed first:\n%s", got)
	}
	if !strings.Contains(got, "#FF6B6B") {
		t.Fatalf("expected color in listing:\n%s", got)
	}
	c, _ := svc.FindCalendar("Work")
	if c.IsVisible {
		t.Fatalf("expected Work hidden after toggle")
	}
}

func TestAddRejectsBadColor(t *testing.T) {
	svc := apptest.SignedIn(t)
	add := &Add{Service: svc, Name: "Work", Color: "red", Out: &bytes.Buffer{}}
	var ve *editor.ValidationError
	if err := add.Do(context.Background()); !errors.As(err, &ve) || ve.Message != editor.MsgCalendarColor {
		t.Fatalf("expected color validation error, got %v", err)
	}
}

func TestEditKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	svc := apptest.SignedIn(t)
	if err := (&Add{Service: svc, Name: "Work", Color: "#FF6B6B", Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	name := "Office"
	if err := (&Edit{Service: svc, Ref: "work", Name: &name, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	c, err := svc.FindCalendar("office")
	if err != nil || c.Color != "#FF6B6B" {
		t.Fatalf("expected renamed calendar keeping its color, got %+v %v", c, err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := apptest.SignedIn(t)
	if err := (&Add{Service: svc, Name: "Work", Color: "#FF6B6B", Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}

	var out bytes.Buffer
	decline := editor.ConfirmFunc(func(string, string) (bool, error) { return false, nil })
	if err := (&Delete{Service: svc, Ref: "Work", Confirmer: decline, Out: &out}).Do(ctx); err != nil {
		t.Fatalf("declined delete should not fail: %v", err)
	}
	if !strings.Contains(out.String(), "Cancelled") {
		t.Fatalf("expected Cancelled, got %q", out.String())
	}
	if _, err := svc.FindCalendar("Work"); err != nil {
		t.Fatalf("calendar should survive a declined delete: %v", err)
	}

	if err := (&Delete{Service: svc, Ref: "Work", Confirmer: editor.Always, Out: &out}).Do(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.FindCalendar("Work"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected calendar gone, got %v", err)
	}

	err := (&Delete{Service: svc, Ref: "Personal", Confirmer: editor.Always, Out: &out}).Do(ctx)
	if !errors.Is(err, editor.ErrDefaultCalendar) {
		t.Fatalf("expected default calendar refusal, got %v", err)
	}
}

func TestClearRecreatesDefault(t *testing.T) {
	ctx := context.Background()
	svc := apptest.SignedIn(t)
	if err := (&Add{Service: svc, Name: "Work", Color: "#FF6B6B", Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := (&Clear{Service: svc, Confirmer: editor.Always, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cals := svc.Calendars()
	if len(cals) != 1 || !cals[0].IsDefault {
		t.Fatalf("expected only a fresh default calendar, got %+v", cals)
	}
}
