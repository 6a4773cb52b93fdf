// Package auth gates the calendar behind a signed-in session. A Provider
// signs users up, in and out; a Gate tracks whether a session is resolved.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrUserExists         = errors.New("User already registered")
	ErrSignedOut          = errors.New("auth: not signed in")
	ErrLoading            = errors.New("auth: session not resolved")
)

// User is a registered account without its secret.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an authenticated user and the token proving it.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// Provider is the identity service the app signs in against.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// Session returns the current session, or nil when signed out.
	Session(ctx context.Context) (*Session, error)
}

const (
	MsgFillAllFields    = "Please fill in all fields"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordShort    = "Password must be at least 6 characters"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgAccountCreated   = "Account created! You can sign in now."
	MsgUnexpected       = "An unexpected error occurred. Please try again."

	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormError is an inline credentials form message.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

// ValidateCredentials applies the sign-in and sign-up form rules in order.
func ValidateCredentials(email, password, confirm string, signUp bool) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return &FormError{Message: MsgFillAllFields}
	}
	if signUp && password != confirm {
		return &FormError{Message: MsgPasswordMismatch}
	}
	if len(password) < MinPasswordLength {
		return &FormError{Message: MsgPasswordShort}
	}
	if !emailPattern.MatchString(email) {
		return &FormError{Message: MsgInvalidEmail}
	}
	return nil
}

// NormalizeEmail is the form of an address used as the account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
