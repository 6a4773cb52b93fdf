package options

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/editor"
)

// EventOptions are the event fields settable from flags.
type EventOptions struct {
	Title       string
	Description string
	Location    string
	Date        string
	Start       string
	EndDate     string
	End         string
	AllDay      bool
	Reminder    int
}

// EventFlagNames are the flags AddEventArgs registers, in prompt order.
var EventFlagNames = []string{"title", "date", "start", "end", "all-day", "location", "description", "reminder"}

// AddEventArgs registers the event field flags.
func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Event title.")
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Longer notes for the event.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"Where the event happens.")
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Start date, example: --date="2024-05-15".`)
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time, example: --start="09:30".`)
	cmd.Flags().StringVar(&o.EndDate, "end-date", "",
		"End date. Defaults to the start date.")
	cmd.Flags().StringVar(&o.End, "end", "",
		"End time. Defaults to one hour after the start.")
	cmd.Flags().BoolVar(&o.AllDay, "all-day", false,
		"The event spans whole days.")
	cmd.Flags().IntVar(&o.Reminder, "reminder", 0,
		base.Wrap80("Reminder in minutes before the start. Use -1 to clear it."))
}

// Patch converts the flags the user set into an editor.EventPatch.
func (o *EventOptions) Patch(cmd *cobra.Command, calendarRef string) editor.EventPatch {
	p := editor.EventPatch{
		Title:       o.Title,
		Description: o.Description,
		Location:    o.Location,
		Calendar:    calendarRef,
		Date:        o.Date,
		Start:       o.Start,
		EndDate:     o.EndDate,
		End:         o.End,
	}
	if cmd.Flags().Changed("all-day") {
		v := o.AllDay
		p.AllDay = &v
	}
	if cmd.Flags().Changed("reminder") {
		v := o.Reminder
		p.Reminder = &v
	}
	return p
}
