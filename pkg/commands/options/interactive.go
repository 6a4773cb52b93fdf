package options

import (
	"github.com/spf13/cobra"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

// InteractiveArgs registers -i. On the root it walks the command tree; on
// event commands it prompts for every field flag left unset.
func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for the command or for unset fields.`)
}
