package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shulehq/shulectl/core/session"
)

func newWhoamiCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account and its profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.guard(""); err != nil {
				return err
			}

			sess, err := deps.Store.Read()
			if err != nil {
				return errors.Wrap(err, "reading session")
			}

			pterm.DefaultSection.Println("Session")
			pterm.Info.Printf("Role: %s\n", sess.Role.DisplayName())
			if sess.UserID != "" {
				pterm.Info.Printf("User ID: %s\n", sess.UserID)
			}

			return renderProfile(cmd, deps)
		},
	}
}

// renderProfile resolves and prints the display profile. Fetch failures
// degrade to the cached snapshot or a placeholder; they never fail the
// command. Only an expired session surfaces as an error.
func renderProfile(cmd *cobra.Command, deps *Deps) error {
	profile, fromCache, err := deps.Backend.Profile(cmd.Context())
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Profile")
	if profile.IsEmpty() {
		pterm.Info.Println("Profile unavailable.")
		return nil
	}

	if first := firstName(profile.FullName); first != "" {
		pterm.Info.Printf("Welcome, %s\n", first)
	}
	printField("Name", profile.FullName)
	printField("Email", profile.Email)
	printField("Phone", profile.Phone)
	printField("Department", profile.Department)
	printField("Role", session.NormalizeRole(profile.Role).DisplayName())
	if fromCache {
		pterm.Warning.Println("Showing cached profile; the server could not be reached.")
	}
	return nil
}

func printField(name, value string) {
	if value != "" {
		pterm.Info.Printf("%s: %s\n", name, value)
	}
}

func firstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
