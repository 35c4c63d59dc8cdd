package session

import (
	"strings"
	"time"
)

// Role classifies a signed-in principal's authorization level. It is whatever
// the backend declared at sign-in, normalized to uppercase; it is never
// re-derived from token claims.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleFaculty Role = "FACULTY"
	RoleStudent Role = "STUDENT"
	RoleUser    Role = "USER"
)

var roleDisplayNames = map[Role]string{
	RoleAdmin:   "Administrator",
	RoleFaculty: "Faculty Member",
	RoleStudent: "Student",
	RoleUser:    "User",
}

// NormalizeRole uppercases and trims a backend-provided role tag.
func NormalizeRole(role string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(role)))
}

// Known reports whether the role belongs to the closed set of role tags.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent, RoleUser:
		return true
	}
	return false
}

// DisplayName returns the human-facing name of the role.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// Dashboard paths, one per role subtree, plus the two entry pages.
const (
	LoginPath            = "/"
	UnauthorizedPath     = "/unauthorized"
	AdminDashboardPath   = "/admin/main"
	FacultyDashboardPath = "/faculty/main"
	StudentDashboardPath = "/student/main"
)

// DashboardPath maps a role to its dashboard root. It is the single source of
// truth for the post-login redirect; unrecognized roles (USER included) land
// on the unauthorized page.
func DashboardPath(role Role) string {
	switch NormalizeRole(string(role)) {
	case RoleAdmin:
		return AdminDashboardPath
	case RoleFaculty:
		return FacultyDashboardPath
	case RoleStudent:
		return StudentDashboardPath
	}
	return UnauthorizedPath
}

// Profile is the cached display profile of the signed-in user. It is display
// data only and must never drive an authorization decision; only Session.Role
// controls access.
type Profile struct {
	UserID     string `json:"userId,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`

	FetchedAt time.Time `json:"fetchedAt,omitempty"`
}

func (p Profile) IsEmpty() bool {
	return p == (Profile{FetchedAt: p.FetchedAt})
}

// Session is the locally persisted authentication state: an opaque bearer
// token, the backend-declared role and, optionally, the user ID and the last
// successfully fetched profile snapshot.
type Session struct {
	Token   string
	Role    Role
	UserID  string
	Profile *Profile // cached snapshot; may be stale
}

// IsAuthenticated reports whether the session carries a token. A session with
// a token but no role still fails role-gated guards; see Guard.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
