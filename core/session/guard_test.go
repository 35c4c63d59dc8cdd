package session

import "testing"

func TestGuard(t *testing.T) {
	tests := []struct {
		name         string
		session      Session
		requiredRole Role
		want         Decision
	}{
		{name: "empty store", session: Session{}, requiredRole: RoleAdmin, want: RedirectToLogin},
		{name: "no token regardless of role", session: Session{Role: RoleAdmin}, requiredRole: RoleAdmin, want: RedirectToLogin},
		{name: "no token, no required role", session: Session{}, want: RedirectToLogin},
		{name: "token but no role fails closed", session: Session{Token: "abc"}, requiredRole: RoleAdmin, want: RedirectToUnauthorized},
		{name: "role mismatch", session: Session{Token: "xyz", Role: RoleStudent}, requiredRole: RoleAdmin, want: RedirectToUnauthorized},
		{name: "matching role", session: Session{Token: "abc", Role: RoleAdmin}, requiredRole: RoleAdmin, want: Render},
		{name: "case-insensitive match", session: Session{Token: "abc", Role: "admin"}, requiredRole: "Admin", want: Render},
		{name: "no required role renders any session", session: Session{Token: "abc", Role: RoleUser}, want: Render},
		{name: "profile never grants access", session: Session{Token: "abc", Role: RoleStudent, Profile: &Profile{Role: "ADMIN"}}, requiredRole: RoleAdmin, want: RedirectToUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guard(tt.session, tt.requiredRole); got != tt.want {
				t.Errorf("Guard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuard_reEvaluatedAfterLogout(t *testing.T) {
	sess := Session{Token: "abc", Role: RoleFaculty}
	if got := Guard(sess, RoleFaculty); got != Render {
		t.Fatalf("Guard() before logout = %v, want %v", got, Render)
	}

	// logout replaces the session wholesale; the next evaluation must not
	// remember the previous decision
	sess = Session{}
	for _, role := range []Role{RoleAdmin, RoleFaculty, RoleStudent, ""} {
		if got := Guard(sess, role); got != RedirectToLogin {
			t.Errorf("Guard(%q) after logout = %v, want %v", role, got, RedirectToLogin)
		}
	}
}
