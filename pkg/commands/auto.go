package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/daybook/pkg/snake"
)

// PromptNext walks the command tree with a picker until a runnable command
// is chosen, then asks for its arguments and flags and runs it.
func (d *daybook) PromptNext(cmd *cobra.Command, args []string) error {
	var subcommands []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			subcommands = append(subcommands, c)
		}
	}
	if len(subcommands) == 0 {
		return d.runPrompted(cmd, args)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name }} {{ .Short | cyan }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "➜  {{ .Name }} {{ .Short | cyan }}",
		Details: `
--------- Details ----------
{{ .Long }}
`,
	}

	searcher := func(input string, index int) bool {
		subcommand := subcommands[index]
		name := strings.Replace(strings.ToLower(subcommand.Name()+subcommand.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)

		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Commands",
		Items:     subcommands,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    snake.NopCloser(cmd.OutOrStdout()),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return err
	}
	next := subcommands[i]
	if next.Runnable() && !next.HasAvailableSubCommands() {
		return d.runPrompted(next, args)
	}
	return d.PromptNext(next, args)
}

// runPrompted asks for positional arguments when the command takes any,
// then for every visible local flag, and executes cmd the way cobra would.
func (d *daybook) runPrompted(cmd *cobra.Command, args []string) error {
	p := snake.New(cmd)
	if len(args) == 0 && strings.Contains(cmd.Use, " ") {
		use := strings.TrimSpace(strings.TrimPrefix(cmd.Use, cmd.Name()))
		line, err := p.Text(fmt.Sprintf("Arguments %s", use), "")
		if err != nil {
			return err
		}
		args = strings.Fields(line)
	}
	if err := cmd.ValidateArgs(args); err != nil {
		return err
	}

	var names []string
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" || f.Name == "interactive" {
			return
		}
		names = append(names, f.Name)
	})
	if err := p.PromptFlags(cmd, names...); err != nil {
		return err
	}

	if err := d.preRun(cmd, args); err != nil {
		return err
	}
	if cmd.PreRunE != nil {
		if err := cmd.PreRunE(cmd, args); err != nil {
			return err
		}
	}
	switch {
	case cmd.RunE != nil:
		return cmd.RunE(cmd, args)
	case cmd.Run != nil:
		cmd.Run(cmd, args)
		return nil
	default:
		return cmd.Help()
	}
}
