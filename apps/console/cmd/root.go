package cmd

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shulehq/shulectl/core"
	"github.com/shulehq/shulectl/core/session"
	"github.com/shulehq/shulectl/services/backend"
)

// Backend is the slice of the REST client the console needs; tests stub it.
type Backend interface {
	SignIn(ctx context.Context, creds backend.Credentials) (session.Session, error)
	Profile(ctx context.Context) (session.Profile, bool, error)
}

var _ Backend = (*backend.Client)(nil)

// Deps carries the shared dependencies of every console command.
type Deps struct {
	Conf    *core.Config
	Logger  core.Logger
	Store   session.Store
	Backend Backend // built lazily from Conf when nil
}

var (
	errNotSignedIn = errors.New("you are not signed in; run `shulectl login` first")
	errForbidden   = errors.New("you do not have permission to access this area")
)

// guard re-evaluates the session against the store on every invocation of a
// protected command; nothing is cached between navigations.
func (d *Deps) guard(requiredRole session.Role) error {
	sess, err := d.Store.Read()
	if err != nil {
		return errors.Wrap(err, "reading session")
	}
	switch session.Guard(sess, requiredRole) {
	case session.RedirectToLogin:
		return errNotSignedIn
	case session.RedirectToUnauthorized:
		return errForbidden
	}
	return nil
}

// New builds the console command tree.
func New(deps *Deps) *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:   "shulectl",
		Short: "Terminal console for " + deps.Conf.AppName,
		Long: `shulectl is the operator console for ` + deps.Conf.AppName + `.

Sign in with your platform account; the console keeps an opaque bearer session
locally and gates the admin, faculty and student areas by the role the server
declared at sign-in. All real authorization is re-checked server-side per
request; the local gate is a convenience, not a security boundary.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if apiURL != "" {
				deps.Conf.APIBaseURL = strings.TrimRight(apiURL, "/")
				deps.Backend = nil
			}
			if deps.Backend == nil {
				deps.Backend = backend.NewClient(deps.Conf, deps.Store, deps.Logger)
			}
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "Shule API base URL (overrides config)")

	root.AddCommand(
		newLoginCmd(deps),
		newLogoutCmd(deps),
		newWhoamiCmd(deps),
		newPortalCmd(deps, session.RoleAdmin, "admin", "Admin portal", adminAreas),
		newPortalCmd(deps, session.RoleFaculty, "faculty", "Faculty portal", facultyAreas),
		newPortalCmd(deps, session.RoleStudent, "student", "Student portal", studentAreas),
	)
	return root
}
