package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/editor"
	"tableflip.dev/daybook/pkg/snake"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

// Confirmer approves everything with --yes and prompts otherwise.
func (o *ConfirmOptions) Confirmer(cmd *cobra.Command) editor.Confirmer {
	if o.Yes {
		return editor.Always
	}
	return snake.New(cmd)
}
