package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/store"
)

var now = time.Date(2024, time.May, 15, 8, 30, 0, 0, time.Local)

// run executes one command line against dir the way a fresh process would.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewWithOptions(app.Options{
		Config: store.NewConfig(dir),
		Now:    func() time.Time { return now },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("daybook %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func signIn(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "auth", "signup", "--email", "ada@example.com", "--password", "engine1")
	mustRun(t, dir, "auth", "signin", "--email", "ada@example.com", "--password", "engine1")
}

func TestCommandsRequireSignIn(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "event", "list")
	if err == nil || !strings.Contains(err.Error(), "daybook auth signin") {
		t.Fatalf("expected a sign in hint, got %v", err)
	}

	out := mustRun(t, dir, "auth", "status")
	if !strings.Contains(out, "Not signed in") {
		t.Fatalf("unexpected status:\n%s", out)
	}
}

func TestSignUpThenSignIn(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "auth", "signup", "--email", "ada@example.com", "--password", "engine1")
	if strings.Contains(out, "Signed in") {
		t.Fatalf("sign up must not sign in:\n%s", out)
	}
	if _, err := run(t, dir, "calendar", "list"); err == nil {
		t.Fatal("expected calendar list to need a session")
	}

	out = mustRun(t, dir, "auth", "signin", "--email", "ADA@example.com", "--password", "engine1")
	if !strings.Contains(out, "Signed in as ada@example.com") {
		t.Fatalf("unexpected sign in output:\n%s", out)
	}
	out = mustRun(t, dir, "auth", "status")
	if !strings.Contains(out, "ada@example.com") {
		t.Fatalf("session should persist across processes:\n%s", out)
	}

	mustRun(t, dir, "auth", "signout")
	if _, err := run(t, dir, "calendar", "list"); err == nil {
		t.Fatal("expected calendar list to fail after sign out")
	}
}

func TestCalendarAndEventFlow(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	out := mustRun(t, dir, "calendar", "list")
	if !strings.Contains(out, "Personal") {
		t.Fatalf("expected the default calendar:\n%s", out)
	}

	mustRun(t, dir, "calendar", "add", "Work", "--color", "#34C759")
	mustRun(t, dir, "event", "add", "Standup", "--calendar", "work", "--date", "2024-05-20", "--start", "09:30", "--end", "09:45")

	out = mustRun(t, dir, "event", "list", "--from", "2024-5-20", "--to", "2024-5-20")
	if !strings.Contains(out, "Standup") {
		t.Fatalf("expected the new event:\n%s", out)
	}

	mustRun(t, dir, "calendar", "toggle", "Work")
	out = mustRun(t, dir, "event", "list", "--from", "2024-5-20", "--to", "2024-5-20")
	if strings.Contains(out, "Standup") {
		t.Fatalf("hidden calendars stay out of the list:\n%s", out)
	}
	out = mustRun(t, dir, "event", "list", "--all", "--from", "2024-5-20", "--to", "2024-5-20")
	if !strings.Contains(out, "Standup") {
		t.Fatalf("--all includes hidden calendars:\n%s", out)
	}

	mustRun(t, dir, "calendar", "delete", "Work", "--yes")
	out = mustRun(t, dir, "event", "list", "--all", "--from", "2024-5-20", "--to", "2024-5-20")
	if strings.Contains(out, "Standup") {
		t.Fatalf("deleting a calendar removes its events:\n%s", out)
	}
}

func TestJSONErrors(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	// --json reports the error on stdout and exits cleanly.
	if _, err := run(t, dir, "calendar", "add", "Bad", "--color", "red", "--json"); err != nil {
		t.Fatalf("expected the error to be reported as JSON, got %v", err)
	}
	if _, err := run(t, dir, "calendar", "add", "Bad", "--color", "red"); err == nil {
		t.Fatal("expected an invalid color error")
	}
}

func TestVersionNeedsNoDataDirectory(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version", "--short")
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}
