package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/daybook/pkg/store"
)

func newTestLocal(t *testing.T, now *time.Time) (*Local, store.Persistence) {
	t.Helper()
	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return NewLocal(p, LocalOptions{
		Now:        func() time.Time { return *now },
		SessionTTL: time.Hour,
		Cost:       bcrypt.MinCost,
	}), p
}

func TestValidateCredentials(t *testing.T) {
	cases := []struct {
		name                     string
		email, password, confirm string
		signUp                   bool
		want                     string
	}{
		{"empty", " ", "secret1", "", false, MsgFillAllFields},
		{"blank password", "a@b.co", "   ", "", false, MsgFillAllFields},
		{"mismatch", "a@b.co", "secret1", "secret2", true, MsgPasswordMismatch},
		{"mismatch ignored on sign in", "a@b.co", "secret1", "", false, ""},
		{"short", "a@b.co", "abc", "abc", true, MsgPasswordShort},
		{"email", "not-an-email", "secret1", "secret1", true, MsgInvalidEmail},
		{"ok", " a@b.co ", "secret1", "secret1", true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCredentials(tc.email, tc.password, tc.confirm, tc.signUp)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			var fe *FormError
			if !errors.As(err, &fe) || fe.Message != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLocalSignUpSignInSignOut(t *testing.T) {
	now := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC)
	l, _ := newTestLocal(t, &now)
	ctx := context.Background()

	u, err := l.SignUp(ctx, "Me@Example.com", "secret1")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if u.Email != "me@example.com" {
		t.Fatalf("email not normalized: %s", u.Email)
	}
	if _, err := l.SignUp(ctx, "me@example.com", "other12"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if s, _ := l.Session(ctx); s != nil {
		t.Fatalf("sign up must not sign in")
	}

	if _, err := l.SignIn(ctx, "me@example.com", "wrong!!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := l.SignIn(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := l.SignIn(ctx, "ME@example.com", "secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	s, err := l.Session(ctx)
	if err != nil || s == nil {
		t.Fatalf("expected session, got %v %v", s, err)
	}
	if s.User.ID != u.ID {
		t.Fatalf("session for wrong user %+v", s.User)
	}

	if err := l.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if s, _ := l.Session(ctx); s != nil {
		t.Fatalf("expected no session after sign out")
	}
}

func TestLocalConcurrentSignUpsKeepEveryAccount(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	l, _ := newTestLocal(t, &now)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := l.SignUp(ctx, fmt.Sprintf("user%d@example.com", i), "secret1"); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("sign up: %v", err)
	}

	accts, err := l.accounts()
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accts) != n {
		t.Fatalf("got %d accounts, want %d", len(accts), n)
	}
}

func TestLocalSessionExpires(t *testing.T) {
	now := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC)
	l, _ := newTestLocal(t, &now)
	ctx := context.Background()
	if _, err := l.SignUp(ctx, "me@example.com", "secret1"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := l.SignIn(ctx, "me@example.com", "secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if s, err := l.Session(ctx); err != nil || s != nil {
		t.Fatalf("expected expired session, got %v %v", s, err)
	}
}

func TestLocalRejectsTamperedToken(t *testing.T) {
	now := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC)
	l, p := newTestLocal(t, &now)
	ctx := context.Background()
	if _, err := l.SignUp(ctx, "me@example.com", "secret1"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := l.SignIn(ctx, "me@example.com", "secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := p.WriteBlob(SecretKey, []byte("rotated-secret-rotated-secret!!!")); err != nil {
		t.Fatalf("rotate secret: %v", err)
	}
	if s, err := l.Session(ctx); err != nil || s != nil {
		t.Fatalf("expected token signed with old secret to be rejected, got %v %v", s, err)
	}
}

func TestGate(t *testing.T) {
	now := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC)
	l, _ := newTestLocal(t, &now)
	ctx := context.Background()
	g := NewGate(l)

	if g.Status() != Loading || !errors.Is(g.Require(), ErrLoading) {
		t.Fatalf("gate should start loading")
	}
	var seen []Status
	cancel := g.Subscribe(func(s Status) { seen = append(seen, s) })
	defer cancel()

	if err := g.Resolve(ctx); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !errors.Is(g.Require(), ErrSignedOut) {
		t.Fatalf("expected signed out")
	}
	if _, err := g.SignUp(ctx, "me@example.com", "secret1"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if err := g.SignIn(ctx, "me@example.com", "secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if g.Require() != nil || g.Session() == nil {
		t.Fatalf("expected signed in")
	}

	// A fresh gate over the same store picks the session back up.
	other := NewGate(l)
	if err := other.Resolve(ctx); err != nil || other.Status() != SignedIn {
		t.Fatalf("expected persisted session, got %s %v", other.Status(), err)
	}

	if err := g.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	want := []Status{SignedOut, SignedIn, SignedOut}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("unexpected transitions %v", seen)
		}
	}
}
