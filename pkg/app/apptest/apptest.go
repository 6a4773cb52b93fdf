// Package apptest opens throwaway services for tests.
package apptest

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/store"
)

// Now is the clock every test service runs on: Wednesday 15 May 2024, 08:30.
var Now = time.Date(2024, time.May, 15, 8, 30, 0, 0, time.Local)

const (
	Email    = "grace@example.com"
	Password = "hopper1"
)

// New opens a signed-out service in a temporary directory.
func New(t testing.TB) *app.Service {
	t.Helper()
	s, err := app.Open(context.Background(), app.Options{
		Config: store.NewConfig(t.TempDir()),
		Now:    func() time.Time { return Now },
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

// SignedIn opens a service with a registered user signed in and calendar
// data loaded.
func SignedIn(t testing.TB) *app.Service {
	t.Helper()
	ctx := context.Background()
	s := New(t)
	if _, err := s.Gate.SignUp(ctx, Email, Password); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if err := s.Gate.SignIn(ctx, Email, Password); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := s.Require(ctx); err != nil {
		t.Fatalf("require: %v", err)
	}
	return s
}
