package cmd

import (
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newLogoutCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// clears every session field; running it while already signed out
			// leaves the same fully-cleared state
			if err := deps.Store.Clear(); err != nil {
				return errors.Wrap(err, "clearing session")
			}
			pterm.Success.Println("Signed out. Run `shulectl login` to sign in again.")
			return nil
		},
	}
}
