// Package account contains runners for signing up, in and out.
package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/auth"
)

var errNoService = errors.New("account: no service configured")

// Prompter asks for credentials that were not given as flags.
type Prompter interface {
	Text(label, def string) (string, error)
	Password(label string) (string, error)
}

type credentials struct {
	Email    string
	Password string
}

func (c *credentials) fill(p Prompter, confirm bool) (string, error) {
	if p == nil {
		return c.Password, nil
	}
	var err error
	if c.Email == "" {
		if c.Email, err = p.Text("Email", ""); err != nil {
			return "", err
		}
	}
	if c.Password == "" {
		if c.Password, err = p.Password("Password"); err != nil {
			return "", err
		}
		if confirm {
			return p.Password("Confirm password")
		}
	}
	return c.Password, nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// SignUp registers an account. The user still has to sign in.
type SignUp struct {
	Service  *app.Service
	Email    string
	Password string
	// Prompter fills in missing credentials; nil means flags only.
	Prompter Prompter
	Out      io.Writer
}

// Do executes the sign up.
func (s *SignUp) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	c := credentials{Email: s.Email, Password: s.Password}
	confirm, err := c.fill(s.Prompter, true)
	if err != nil {
		return err
	}
	if err := auth.ValidateCredentials(c.Email, c.Password, confirm, true); err != nil {
		return err
	}
	if _, err := s.Service.Gate.SignUp(ctx, c.Email, c.Password); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out(s.Out), auth.MsgAccountCreated)
	return err
}

// SignIn opens a session.
type SignIn struct {
	Service  *app.Service
	Email    string
	Password string
	Prompter Prompter
	Out      io.Writer
}

// Do executes the sign in.
func (s *SignIn) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	c := credentials{Email: s.Email, Password: s.Password}
	if _, err := c.fill(s.Prompter, false); err != nil {
		return err
	}
	if err := auth.ValidateCredentials(c.Email, c.Password, "", false); err != nil {
		return err
	}
	if err := s.Service.Gate.SignIn(ctx, c.Email, c.Password); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out(s.Out), "Signed in as %s\n", s.Service.Gate.Session().User.Email)
	return err
}

// SignOut closes the session.
type SignOut struct {
	Service *app.Service
	Out     io.Writer
}

// Do executes the sign out.
func (s *SignOut) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	if err := s.Service.Gate.SignOut(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out(s.Out), "Signed out")
	return err
}

// Status prints who is signed in.
type Status struct {
	Service *app.Service
	Out     io.Writer
}

// Do executes the status check.
func (s *Status) Do(_ context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	w := out(s.Out)
	sess := s.Service.Gate.Session()
	if sess == nil {
		_, err := fmt.Fprintln(w, "Not signed in")
		return err
	}
	_, err := fmt.Fprintf(w, "Signed in as %s (session expires %s)\n",
		sess.User.Email, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return err
}
