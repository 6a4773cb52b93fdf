package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where data is stored.",
		Example: `
daybook info
DAYBOOK_CONFIG_PATH=/tmp/daybook daybook info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := info.Info{
				Service: d.svc,
				Out:     cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	topLevel.AddCommand(cmd)
}
