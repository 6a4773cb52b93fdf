package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/events"
	"tableflip.dev/daybook/pkg/snake"
)

func addEvent(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "ev"},
		Short:   "Manage events.",
		Example: `
daybook event add --title "Dentist" --date 2024-05-20 --start 14:30
daybook event list --from 2024-5-1 --to 2024-5-31
daybook event edit 3f2a --end 15:30
`,
	}

	addEventList(cmd, d)
	addEventAdd(cmd, d)
	addEventEdit(cmd, d)
	addEventDelete(cmd, d)

	topLevel.AddCommand(cmd)
}

func addEventList(topLevel *cobra.Command, d *daybook) {
	io := &options.IDOptions{}
	co := &options.CalendarOptions{}
	ro := &options.RangeOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events sorted by start.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, to, err := ro.Bounds(d.svc.Clock())
			if err != nil {
				return d.output.HandleError(err)
			}
			s := events.List{
				Service:     d.svc,
				From:        from,
				To:          to,
				CalendarRef: co.Calendar,
				All:         co.All,
				ShowID:      io.ShowID,
				Out:         cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddCalendarArg(cmd, co, "Only list events of this calendar.")
	options.AddAllCalendarsArg(cmd, co)
	options.AddRangeArgs(cmd, ro)
	_ = cmd.RegisterFlagCompletionFunc("calendar", d.calendarArgs)
	topLevel.AddCommand(cmd)
}

func addEventAdd(topLevel *cobra.Command, d *daybook) {
	eo := &options.EventOptions{}
	co := &options.CalendarOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create an event.",
		Long: base.Wrap80("Create an event. Without --start it begins at the next full hour, " +
			"or at 09:00 when --date is another day, and lasts one hour. " +
			"It goes on the default calendar unless --calendar is set."),
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && eo.Title == "" {
				eo.Title = args[0]
				_ = cmd.Flags().Set("title", args[0])
			}
			if i.Interactive {
				return snake.New(cmd).PromptFlags(cmd, append(options.EventFlagNames, "calendar")...)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := events.Add{
				Service: d.svc,
				Patch:   eo.Patch(cmd, co.Calendar),
				Out:     cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddCalendarArg(cmd, co, "Calendar for the event. Defaults to the default calendar.")
	options.InteractiveArgs(cmd, i)
	snake.MarkRequired(cmd.Flags(), "title")
	_ = cmd.RegisterFlagCompletionFunc("calendar", d.calendarArgs)
	topLevel.AddCommand(cmd)
}

func addEventEdit(topLevel *cobra.Command, d *daybook) {
	eo := &options.EventOptions{}
	co := &options.CalendarOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:               "edit <event>",
		Short:             "Change fields of an event. Unset flags keep their value.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: d.eventArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if i.Interactive {
				return snake.New(cmd).PromptFlags(cmd, append(options.EventFlagNames, "calendar")...)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := events.Edit{
				Service: d.svc,
				Ref:     args[0],
				Patch:   eo.Patch(cmd, co.Calendar),
				Out:     cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddCalendarArg(cmd, co, "Move the event to this calendar.")
	options.InteractiveArgs(cmd, i)
	_ = cmd.RegisterFlagCompletionFunc("calendar", d.calendarArgs)
	topLevel.AddCommand(cmd)
}

func addEventDelete(topLevel *cobra.Command, d *daybook) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:               "delete <event>",
		Aliases:           []string{"rm"},
		Short:             "Delete an event.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: d.eventArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := events.Delete{
				Service:   d.svc,
				Ref:       args[0],
				Confirmer: co.Confirmer(cmd),
				Out:       cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
