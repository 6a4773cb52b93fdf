package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/editor"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

// AddOutputArg registers --json for cmd and every subcommand.
func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Report errors as JSON.")
}

// ErrorKind classifies err for JSON output.
func ErrorKind(err error) string {
	var (
		ve *editor.ValidationError
		fe *auth.FormError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &fe):
		return "validation"
	case errors.Is(err, editor.ErrCancelled):
		return "cancelled"
	case errors.Is(err, app.ErrNotFound):
		return "not_found"
	case errors.Is(err, app.ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, auth.ErrSignedOut), errors.Is(err, auth.ErrInvalidCredentials):
		return "auth"
	default:
		return "error"
	}
}

// HandleError prints err as {"error": ..., "kind": ...} and swallows it in
// JSON mode. Otherwise err is returned for cobra to report.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		b, merr := json.Marshal(map[string]string{
			"error": err.Error(),
			"kind":  ErrorKind(err),
		})
		if merr != nil {
			return merr
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
