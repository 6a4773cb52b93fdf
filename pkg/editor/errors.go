// Package editor holds the event and calendar forms. A form is seeded from
// an existing record or from creation defaults, validated before any store
// call, and reports failures as errors carrying a user-facing message.
package editor

import "errors"

var (
	// ErrCancelled is returned when a confirmation is declined.
	ErrCancelled = errors.New("editor: cancelled")

	ErrTitleRequired    = errors.New("editor: title required")
	ErrCalendarRequired = errors.New("editor: calendar required")
	ErrEndBeforeStart   = errors.New("editor: end before start")
	ErrInvalidDateTime  = errors.New("editor: invalid date or time")
	ErrNameRequired     = errors.New("editor: name required")
	ErrInvalidColor     = errors.New("editor: invalid color")
	ErrDefaultCalendar  = errors.New("editor: default calendar")
)

// ValidationError is a form input problem caught before the store is called.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// SaveError wraps a store failure with the message shown to the user.
type SaveError struct {
	Message string
	Err     error
}

func (e *SaveError) Error() string { return e.Message }

func (e *SaveError) Unwrap() error { return e.Err }

func invalid(err error, msg string) error { return &ValidationError{Message: msg, Err: err} }

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(title, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(title, message string) (bool, error)

func (f ConfirmFunc) Confirm(title, message string) (bool, error) { return f(title, message) }

// Always approves every confirmation. Used for --yes.
var Always Confirmer = ConfirmFunc(func(string, string) (bool, error) { return true, nil })

func confirm(c Confirmer, title, message string) error {
	if c == nil {
		return ErrCancelled
	}
	ok, err := c.Confirm(title, message)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}
