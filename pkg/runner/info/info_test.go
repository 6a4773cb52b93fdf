package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/daybook/pkg/app/apptest"
)

func TestInfoSignedOut(t *testing.T) {
	t.Setenv("DAYBOOK_CONFIG_PATH", "")
	svc := apptest.New(t)
	var out bytes.Buffer
	if err := (&Info{Service: svc, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Daybook", "not set", svc.Config.BasePath(), "signed out"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Calendars:") {
		t.Errorf("counts shown while signed out:\n%s", got)
	}
}

func TestInfoSignedInShowsCounts(t *testing.T) {
	svc := apptest.SignedIn(t)
	var out bytes.Buffer
	if err := (&Info{Service: svc, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{apptest.Email, "Calendars:", "Events:"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}
}

func TestInfoRequiresService(t *testing.T) {
	if err := (&Info{}).Do(context.Background()); err == nil {
		t.Fatal("expected an error without a service")
	}
}
