package session

// Decision is the outcome of guarding a protected subtree.
type Decision int

const (
	// Render allows the guarded subtree to render.
	Render Decision = iota
	// RedirectToLogin means no usable session exists.
	RedirectToLogin
	// RedirectToUnauthorized means the session's role does not match the
	// subtree's required role.
	RedirectToUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect:" + LoginPath
	case RedirectToUnauthorized:
		return "redirect:" + UnauthorizedPath
	}
	return "unknown"
}

// Guard decides whether a protected subtree may render for the given session.
// It is a pure, synchronous, local decision: no network call, no caching, so
// it must be re-evaluated on every navigation into a guarded subtree. A
// revoked but unexpired token is therefore still accepted here until the
// backend itself starts rejecting requests.
//
// A session with a token but no role fails closed on any role-gated subtree.
func Guard(s Session, requiredRole Role) Decision {
	if !s.IsAuthenticated() {
		return RedirectToLogin
	}
	if requiredRole != "" && NormalizeRole(string(s.Role)) != NormalizeRole(string(requiredRole)) {
		return RedirectToUnauthorized
	}
	return Render
}
