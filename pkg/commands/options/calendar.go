// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// CalendarOptions captures common calendar selection flags for commands.
type CalendarOptions struct {
	Calendar string
	All      bool
}

// AddCalendarArg wires the calendar selection flag on the provided command.
func AddCalendarArg(cmd *cobra.Command, o *CalendarOptions, usage string) {
	cmd.Flags().StringVarP(&o.Calendar, "calendar", "c", "", usage)
}

// AddAllCalendarsArg registers the flag that includes hidden calendars.
func AddAllCalendarsArg(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Include events of hidden calendars.")
}
