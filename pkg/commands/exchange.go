package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/exchange"
)

func addExport(topLevel *cobra.Command, d *daybook) {
	co := &options.CalendarOptions{}
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write events as an iCalendar (.ics) document.",
		Example: `
daybook export > daybook.ics
daybook export --calendar Work --file work.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if file != "" && file != "-" {
				f, err := os.Create(file)
				if err != nil {
					return d.output.HandleError(err)
				}
				defer f.Close()
				w = f
			}
			s := exchange.Export{
				Service:     d.svc,
				CalendarRef: co.Calendar,
				Out:         w,
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddCalendarArg(cmd, co, "Only export events of this calendar.")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout.")
	_ = cmd.RegisterFlagCompletionFunc("calendar", d.calendarArgs)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, d *daybook) {
	co := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Read events from an iCalendar (.ics) document.",
		Long: base.Wrap80("Read VEVENTs from an iCalendar document into one calendar. " +
			"Events land on the default calendar unless --calendar is set. Use - to read stdin."),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return d.output.HandleError(err)
				}
				defer f.Close()
				in = f
			}
			s := exchange.Import{
				Service:     d.svc,
				In:          in,
				CalendarRef: co.Calendar,
				Out:         cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddCalendarArg(cmd, co, "Calendar to import into.")
	_ = cmd.RegisterFlagCompletionFunc("calendar", d.calendarArgs)
	topLevel.AddCommand(cmd)
}
