package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/dateutil"
)

func addCompletions(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(daybook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(daybook completion)
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return topLevel.GenBashCompletionV2(cmd.OutOrStdout(), true)
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessNone}

	topLevel.AddCommand(cmd)
}

// completing opens the service for shell completion, which skips the
// pre-run hooks. Nothing is offered while signed out.
func (d *daybook) completing(cmd *cobra.Command) *app.Service {
	svc, err := d.service(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	if svc.Gate.Status() != auth.SignedIn {
		return nil
	}
	if err := svc.Store.LoadData(cmd.Context()); err != nil {
		return nil
	}
	return svc
}

// calendarArgs completes calendar names for positional arguments and the
// --calendar flag.
func (d *daybook) calendarArgs(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	svc := d.completing(cmd)
	if svc == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, c := range svc.Calendars() {
		if strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(toComplete)) {
			out = append(out, c.Name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func (d *daybook) eventArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc := d.completing(cmd)
	if svc == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, ev := range svc.Events(app.EventQuery{IncludeHidden: true}) {
		if strings.HasPrefix(ev.ID, toComplete) {
			out = append(out, fmt.Sprintf("%s\t%s %s", ev.ID, dateutil.FormatDate(ev.Start()), ev.Title))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
