package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs registers -k. Ids are what `edit`, `delete` and `toggle`
// accept, along with unique id prefixes.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show calendar and event ids.")
}
