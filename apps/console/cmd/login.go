package cmd

import (
	"bufio"
	"fmt"
	"syscall"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shulehq/shulectl/core"
	"github.com/shulehq/shulectl/core/session"
	"github.com/shulehq/shulectl/services/backend"
)

var readPasswordFunc = term.ReadPassword // mockable

func newLoginCmd(deps *Deps) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the platform",
		Long: `Signs in with your email and password and persists the session locally.

On success you land on the dashboard matching the role the server declared
for your account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return errors.Wrap(err, "reading email")
				}
				email = core.CleanString(line)
			}

			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			pwd, err := readPasswordFunc(syscall.Stdin)
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return errors.Wrap(err, "reading password")
			}

			sess, err := deps.Backend.SignIn(cmd.Context(), backend.Credentials{
				Email:    email,
				Password: string(pwd),
			})
			if err != nil {
				var vErr *core.ValidationError
				if errors.As(err, &vErr) {
					for _, fldErr := range vErr.Fields {
						pterm.Error.Printf("%s: %s\n", fldErr.Field, fldErr.Error)
					}
					return errors.New("invalid input")
				}
				return err
			}

			pterm.Success.Printf("Signed in as %s (%s)\n", email, sess.Role.DisplayName())
			if !sess.Role.Known() {
				pterm.Warning.Printf("Server declared an unrecognized role %q.\n", sess.Role)
			}

			// the server-declared role decides the landing page; accounts
			// outside the three portal roles have no console area
			path := session.DashboardPath(sess.Role)
			if path == session.UnauthorizedPath {
				pterm.Warning.Println("Your account has no console dashboard.")
				return nil
			}
			pterm.Info.Printf("Opening %s\n", path)
			return renderDashboard(cmd, deps, sess.Role)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	return cmd
}
