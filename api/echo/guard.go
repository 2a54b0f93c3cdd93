package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/classflow/gradego/core/account"
)

// Decision is the outcome of evaluating a navigation request against the
// access policy.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToRoleHome
)

// authPages are reachable without a session; a signed-in visitor is bounced
// to their portal instead.
var authPages = map[string]bool{
	"/login":    true,
	"/register": true,
	"/enroll":   true,
}

// portalPrefixes maps each guarded section to the role it requires.
var portalPrefixes = map[string]string{
	"/teacher": account.RoleTeacher,
	"/student": account.RoleStudent,
	"/admin":   account.RoleAdmin,
}

// Evaluate decides what to do with a request for path given the verified
// session claims (nil when absent or invalid). Guarded portal sections fail
// closed: a missing token, a mismatched role or a role this build does not
// know all redirect to the login page. Every other path is public.
func Evaluate(path string, claims *Claims) Decision {
	if authPages[path] {
		if claims != nil && account.KnownRole(claims.Role) {
			return RedirectToRoleHome
		}
		return Allow
	}

	for prefix, role := range portalPrefixes {
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			continue
		}
		if claims == nil || claims.Role != role {
			return RedirectToLogin
		}
		return Allow
	}

	return Allow
}

// guardMiddleware applies the access policy to portal navigation with 302
// redirects. API routes under /v1 carry none of the guarded prefixes and
// pass through untouched.
func guardMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims := requestClaims(ctx.Request())
		switch Evaluate(ctx.Request().URL.Path, claims) {
		case RedirectToLogin:
			return ctx.Redirect(http.StatusFound, "/login")
		case RedirectToRoleHome:
			return ctx.Redirect(http.StatusFound, "/"+claims.Role)
		}
		return next(ctx)
	}
}
