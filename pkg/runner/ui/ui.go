// Package ui starts the interactive terminal calendar.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/tui"
	"tableflip.dev/daybook/pkg/tui/theme"
)

// UI runs the Bubble Tea program until the user quits.
type UI struct {
	Service *app.Service
	// Theme overrides the configured theme mode when set.
	Theme string
	// NoWatch disables reloading on changes made by other processes.
	NoWatch bool
}

// Do executes the UI.
func (u *UI) Do(_ context.Context) error {
	if u.Service == nil {
		return errors.New("ui: no service configured")
	}
	raw := u.Theme
	if raw == "" {
		raw = u.Service.Config.Theme()
	}
	mode, err := theme.ParseMode(raw)
	if err != nil {
		logging.Error("ui: theme", err)
	}
	return tui.Run(tui.Options{
		Store: u.Service.Store,
		Gate:  u.Service.Gate,
		Theme: theme.ForMode(mode),
		Now:   u.Service.Now,
		Watch: !u.NoWatch,
	})
}
