package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/commands/options"
)

const (
	// annotationAccess marks commands that run without a signed-in user.
	annotationAccess = "daybook_access"
	// accessNone commands never open the data directory.
	accessNone = "none"
	// accessOpen commands open the data directory but skip the sign-in check.
	accessOpen = "open"
)

// daybook is the state shared by every command: the lazily opened service
// and the output flags.
type daybook struct {
	opts   app.Options
	svc    *app.Service
	output *options.OutputOptions
}

func New() *cobra.Command {
	return NewWithOptions(app.Options{})
}

// NewWithOptions builds the command tree over a service opened with opts.
func NewWithOptions(opts app.Options) *cobra.Command {
	d := &daybook{opts: opts, output: &options.OutputOptions{}}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("A personal calendar on the command line."),
		Long: base.Wrap80("Keep calendars and events in a local data directory. " +
			"Run `daybook ui` for the interactive calendar or use the subcommands to script it."),
		SilenceUsage:      true,
		PersistentPreRunE: d.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return d.output.HandleError(d.PromptNext(cmd, args))
			}
			return cmd.Help()
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}
	options.AddOutputArg(cmd, d.output)
	options.InteractiveArgs(cmd, i)

	AddCommands(cmd, d)
	return cmd
}

func AddCommands(topLevel *cobra.Command, d *daybook) {
	addUI(topLevel, d)
	addShow(topLevel, d)
	addCalendar(topLevel, d)
	addEvent(topLevel, d)
	addExport(topLevel, d)
	addImport(topLevel, d)
	addClear(topLevel, d)
	addAuth(topLevel, d)
	addInfo(topLevel, d)
	addMCP(topLevel, d)
	addVersion(topLevel)
	addCompletions(topLevel, d)
}

func (d *daybook) preRun(cmd *cobra.Command, _ []string) error {
	access := cmd.Annotations[annotationAccess]
	if access == accessNone || cmd.Name() == "help" || cmd.Name() == cobra.ShellCompRequestCmd {
		return nil
	}
	svc, err := d.service(cmd)
	if err != nil {
		return err
	}
	if access == accessOpen {
		if svc.Gate.Status() == auth.SignedIn {
			return svc.Store.LoadData(cmd.Context())
		}
		return nil
	}
	if err := svc.Require(cmd.Context()); err != nil {
		if errors.Is(err, auth.ErrSignedOut) {
			return errors.New("not signed in, run `daybook auth signin` first")
		}
		return err
	}
	return nil
}

// service opens the data directory once per process.
func (d *daybook) service(cmd *cobra.Command) (*app.Service, error) {
	if d.svc != nil {
		return d.svc, nil
	}
	svc, err := app.Open(cmd.Context(), d.opts)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	d.svc = svc
	return svc, nil
}
