package echoapi

import (
	"testing"

	"github.com/classflow/gradego/core/account"
)

func TestEvaluate(t *testing.T) {
	teacher := &Claims{Role: account.RoleTeacher}
	student := &Claims{Role: account.RoleStudent}
	admin := &Claims{Role: account.RoleAdmin}
	unknown := &Claims{Role: "principal"}

	tests := []struct {
		name   string
		path   string
		claims *Claims
		want   Decision
	}{
		// auth pages
		{name: "login, no session", path: "/login", want: Allow},
		{name: "login, signed in", path: "/login", claims: teacher, want: RedirectToRoleHome},
		{name: "register, signed in", path: "/register", claims: student, want: RedirectToRoleHome},
		{name: "enroll, signed in", path: "/enroll", claims: admin, want: RedirectToRoleHome},
		{name: "login, unknown role stays", path: "/login", claims: unknown, want: Allow},

		// guarded portals fail closed
		{name: "teacher portal, no session", path: "/teacher", want: RedirectToLogin},
		{name: "teacher subpage, no session", path: "/teacher/classes", want: RedirectToLogin},
		{name: "teacher portal, teacher", path: "/teacher", claims: teacher, want: Allow},
		{name: "teacher subpage, teacher", path: "/teacher/classes", claims: teacher, want: Allow},
		{name: "student portal, teacher", path: "/student", claims: teacher, want: RedirectToLogin},
		{name: "student portal, student", path: "/student", claims: student, want: Allow},
		{name: "admin portal, student", path: "/admin/tenants", claims: student, want: RedirectToLogin},
		{name: "admin portal, admin", path: "/admin/tenants", claims: admin, want: Allow},
		{name: "teacher portal, unknown role", path: "/teacher", claims: unknown, want: RedirectToLogin},

		// prefix matching is on path segments, not raw strings
		{name: "lookalike prefix is public", path: "/teachers", want: Allow},

		// everything else is public
		{name: "home", path: "/", want: Allow},
		{name: "about, no session", path: "/about", want: Allow},
		{name: "about, signed in", path: "/about", claims: teacher, want: Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.path, tt.claims); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
