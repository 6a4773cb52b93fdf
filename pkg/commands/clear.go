package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/calendars"
)

func addClear(topLevel *cobra.Command, d *daybook) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every calendar and event.",
		Long:  "Delete every calendar and event. A new default calendar is created afterwards.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := calendars.Clear{
				Service:   d.svc,
				Confirmer: co.Confirmer(cmd),
				Out:       cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
