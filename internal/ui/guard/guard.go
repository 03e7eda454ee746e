package guard

import authdomain "todohub/internal/modules/auth/domain"

// Decision is what a guarded route should do for the current session state.
type Decision int

const (
	ShowLoading Decision = iota
	Render
	Redirect
)

// Route names used as redirect targets.
const (
	RouteLogin = "login"
	RouteTodos = "todos"
)

type Result struct {
	Decision Decision
	Target   string
}

// Protected gates identity-dependent routes: loading while the session is
// pending, the wrapped view once authenticated, a redirect to login otherwise.
// No content leaks while verification is in flight.
func Protected(s authdomain.Session) Result {
	if !s.Settled() {
		return Result{Decision: ShowLoading}
	}
	if s.Authenticated() {
		return Result{Decision: Render}
	}
	return Result{Decision: Redirect, Target: RouteLogin}
}

// Public gates entry routes (login, register): an authenticated session is
// bounced to the default landing route instead of seeing the form again.
func Public(s authdomain.Session) Result {
	if !s.Settled() {
		return Result{Decision: ShowLoading}
	}
	if s.Authenticated() {
		return Result{Decision: Redirect, Target: RouteTodos}
	}
	return Result{Decision: Render}
}

// NeedsVerify reports whether a mount should trigger identity verification.
// True at most once per mount: never while pending, never once an identity is
// known, and never after this mount already tried. Render cycles alone must
// not re-trigger verification.
func NeedsVerify(s authdomain.Session, alreadyTried bool) bool {
	if alreadyTried {
		return false
	}
	if s.Identity != nil {
		return false
	}
	return s.Settled()
}
