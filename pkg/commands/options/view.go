package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/calendar"
)

// ViewOptions picks a calendar layout.
type ViewOptions struct {
	Day      bool
	Week     bool
	Month    bool
	AllHours bool
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().BoolVarP(&o.Day, "day", "d", false,
		"Show the day timeline.")
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Show the week.")
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show the month grid.")
	cmd.Flags().BoolVar(&o.AllHours, "all-hours", false,
		"Print empty hours in the day timeline.")
	cmd.MarkFlagsMutuallyExclusive("day", "week", "month")
}

// Mode returns the chosen layout, month when none is set.
func (o *ViewOptions) Mode() calendar.ViewMode {
	switch {
	case o.Day:
		return calendar.ViewDay
	case o.Week:
		return calendar.ViewWeek
	default:
		return calendar.ViewMonth
	}
}
