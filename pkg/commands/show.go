package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/show"
)

func addShow(topLevel *cobra.Command, d *daybook) {
	vo := &options.ViewOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the month, week or day around a date.",
		Example: `
daybook show
daybook show --week --date 2024-5-13
daybook show -d --all-hours
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := do.GetDate(d.svc.Clock())
			if err != nil {
				return d.output.HandleError(err)
			}
			s := show.Show{
				Service:  d.svc,
				Mode:     vo.Mode(),
				Date:     date,
				AllHours: vo.AllHours,
				Out:      cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
