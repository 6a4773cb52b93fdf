package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command, d *daybook) {
	var (
		themeMode string
		noWatch   bool
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar.",
		Long: `Open the interactive calendar. The sign-in screen is shown first when
no session is stored. Changes made by other daybook processes are picked up
while the UI runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := ui.UI{
				Service: d.svc,
				Theme:   themeMode,
				NoWatch: noWatch,
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	cmd.Flags().StringVar(&themeMode, "theme", "", "Theme: light, dark or system. Overrides the config.")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload on changes from other processes.")
	topLevel.AddCommand(cmd)
}
