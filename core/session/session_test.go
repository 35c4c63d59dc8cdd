package session

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{" faculty ", RoleFaculty},
		{"Student", RoleStudent},
		{"user", RoleUser},
		{"", Role("")},
		{"superuser", Role("SUPERUSER")},
	}
	for _, tt := range tests {
		if got := NormalizeRole(tt.in); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRole_Known(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleFaculty, RoleStudent, RoleUser} {
		if !role.Known() {
			t.Errorf("Known(%q) = false, want true", role)
		}
	}
	for _, role := range []Role{"", "SUPERUSER", "admin" /* not normalized */} {
		if role.Known() {
			t.Errorf("Known(%q) = true, want false", role)
		}
	}
}

func TestDashboardPath(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, AdminDashboardPath},
		{"admin", AdminDashboardPath}, // case-insensitive
		{RoleFaculty, FacultyDashboardPath},
		{RoleStudent, StudentDashboardPath},
		{RoleUser, UnauthorizedPath},
		{"", UnauthorizedPath},
		{"SUPERUSER", UnauthorizedPath},
	}
	for _, tt := range tests {
		if got := DashboardPath(tt.role); got != tt.want {
			t.Errorf("DashboardPath(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "Administrator"},
		{RoleFaculty, "Faculty Member"},
		{RoleStudent, "Student"},
		{RoleUser, "User"},
		{"SUPERUSER", "SUPERUSER"}, // unknown roles fall back to the raw tag
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}
