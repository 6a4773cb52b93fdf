// Package snake fills cobra flags and answers confirmations interactively
// with promptui.
package snake

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Prompter reads answers from In and draws prompts on Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	// run executes a prompt; tests replace it with scripted answers.
	run func(p promptui.Prompt) (string, error)
}

// New prompts on the command's streams.
func New(cmd *cobra.Command) *Prompter {
	return &Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

func (p *Prompter) prompt(pr promptui.Prompt) (string, error) {
	pr.Stdin = io.NopCloser(p.In)
	pr.Stdout = NopCloser(p.Out)
	if p.run != nil {
		return p.run(pr)
	}
	return pr.Run()
}

// PromptFlags asks for every named flag the user did not set. Unknown names
// are skipped, as are answers equal to the flag default. Bool flags take
// yes/no answers.
func (p *Prompter) PromptFlags(cmd *cobra.Command, names ...string) error {
	flags := cmd.Flags()
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		var (
			value string
			err   error
		)
		switch f.Value.Type() {
		case "bool":
			value, err = p.promptBool(f)
		default:
			value, err = p.promptString(f)
		}
		if err != nil {
			return err
		}
		if value == "" || value == f.DefValue {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
	}
	return nil
}

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

func label(f *pflag.Flag) string {
	usage := strings.TrimSuffix(f.Usage, ".")
	if usage == "" {
		return asFlags(f)
	}
	return usage
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
