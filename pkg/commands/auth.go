package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/account"
	"tableflip.dev/daybook/pkg/snake"
)

// credentialOptions are the flags shared by signup and signin.
type credentialOptions struct {
	Email    string
	Password string
}

func addCredentialArgs(cmd *cobra.Command, o *credentialOptions) {
	cmd.Flags().StringVar(&o.Email, "email", "", "Account email.")
	cmd.Flags().StringVar(&o.Password, "password", "",
		"Account password. Prompted for when unset and stdin is a terminal.")
}

// prompter asks for missing credentials only on an interactive stdin.
func prompter(cmd *cobra.Command) account.Prompter {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil
	}
	return snake.New(cmd)
}

func addAuth(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and out.",
		Example: `
daybook auth signup --email grace@example.com
daybook auth signin
daybook auth status
`,
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	addAuthSignUp(cmd, d)
	addAuthSignIn(cmd, d)
	addAuthSignOut(cmd, d)
	addAuthStatus(cmd, d)

	topLevel.AddCommand(cmd)
}

func addAuthSignUp(topLevel *cobra.Command, d *daybook) {
	co := &credentialOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account. Sign in afterwards.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := account.SignUp{
				Service:  d.svc,
				Email:    co.Email,
				Password: co.Password,
				Prompter: prompter(cmd),
				Out:      cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	addCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addAuthSignIn(topLevel *cobra.Command, d *daybook) {
	co := &credentialOptions{}

	cmd := &cobra.Command{
		Use:     "signin",
		Aliases: []string{"login"},
		Short:   "Sign in and remember the session.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := account.SignIn{
				Service:  d.svc,
				Email:    co.Email,
				Password: co.Password,
				Prompter: prompter(cmd),
				Out:      cmd.OutOrStdout(),
			}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	addCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addAuthSignOut(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:     "signout",
		Aliases: []string{"logout"},
		Short:   "Forget the stored session.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := account.SignOut{Service: d.svc, Out: cmd.OutOrStdout()}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	topLevel.AddCommand(cmd)
}

func addAuthStatus(topLevel *cobra.Command, d *daybook) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := account.Status{Service: d.svc, Out: cmd.OutOrStdout()}
			return d.output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Annotations = map[string]string{annotationAccess: accessOpen}

	topLevel.AddCommand(cmd)
}
