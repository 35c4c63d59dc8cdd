package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shulehq/shulectl/core/session"
)

// Module areas per portal, mirroring the web console's guarded route subtrees.
var (
	adminAreas   = []string{"students", "faculties", "exams", "library", "finance", "reports"}
	facultyAreas = []string{"attendance", "exams", "quizzes", "assignments"}
	studentAreas = []string{"attendance", "assignments", "quizzes", "exams"}
)

// newPortalCmd builds one role-gated portal subtree. The guard runs in
// PersistentPreRunE so every subcommand, present and future, re-evaluates it
// on entry.
func newPortalCmd(deps *Deps, role session.Role, use, short string, areas []string) *cobra.Command {
	portal := &cobra.Command{
		Use:   use,
		Short: short,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root := cmd.Root(); root.PersistentPreRun != nil {
				root.PersistentPreRun(cmd, args)
			}
			return deps.guard(role)
		},
	}

	portal.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: short + " landing page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderDashboard(cmd, deps, role)
		},
	})
	return portal
}

func renderDashboard(cmd *cobra.Command, deps *Deps, role session.Role) error {
	pterm.DefaultSection.Printf("%s — %s\n", role.DisplayName(), session.DashboardPath(role))

	if err := renderProfile(cmd, deps); err != nil {
		return err
	}

	var areas []string
	switch session.NormalizeRole(string(role)) {
	case session.RoleAdmin:
		areas = adminAreas
	case session.RoleFaculty:
		areas = facultyAreas
	case session.RoleStudent:
		areas = studentAreas
	}

	pterm.DefaultSection.Println("Areas")
	for _, area := range areas {
		pterm.Info.Printf("- %s\n", area)
	}
	return nil
}
