package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/calendars"
)

func addCalendar(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"calendars", "cal"},
		Short:   "Manage calendars.",
		Example: `
daybook calendar list
daybook calendar add Work --color "#FF6B6B"
daybook calendar toggle work
`,
	}

	addCalendarList(cmd, d)
	addCalendarAdd(cmd, d)
	addCalendarEdit(cmd, d)
	addCalendarDelete(cmd, d)
	addCalendarToggle(cmd, d)

	topLevel.AddCommand(cmd)
}

func addCalendarList(topLevel *cobra.Command, d *daybook) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List calendars, the default first.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := calendars.List{
				Service: d.svc,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addCalendarAdd(topLevel *cobra.Command, d *daybook) {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a calendar.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := calendars.Add{
				Service: d.svc,
				Name:    args[0],
				Color:   color,
				Out:     cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&color, "color", "",
		base.Wrap80("Hex color such as #34C759. A palette color is picked when unset."))
	topLevel.AddCommand(cmd)
}

func addCalendarEdit(topLevel *cobra.Command, d *daybook) {
	var name, color string

	cmd := &cobra.Command{
		Use:               "edit <calendar>",
		Short:             "Rename or recolor a calendar.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: d.calendarArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := calendars.Edit{
				Service: d.svc,
				Ref:     args[0],
				Out:     cmd.OutOrStdout(),
			}
			if cmd.Flags().Changed("name") {
				s.Name = &name
			}
			if cmd.Flags().Changed("color") {
				s.Color = &color
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New calendar name.")
	cmd.Flags().StringVar(&color, "color", "", "New hex color.")
	topLevel.AddCommand(cmd)
}

func addCalendarDelete(topLevel *cobra.Command, d *daybook) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:               "delete <calendar>",
		Aliases:           []string{"rm"},
		Short:             "Delete a calendar and all of its events.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: d.calendarArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := calendars.Delete{
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

func addCalendarToggle(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:               "toggle <calendar>",
		Short:             "Show or hide a calendar's events.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: d.calendarArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := calendars.Toggle{
				Service: d.svc,
				Ref:     args[0],
				Out:     cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
