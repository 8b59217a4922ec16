package guard

import (
	"fmt"

	"github.com/suds-dev/suds/internal/models"
)

// Decision is the outcome of an access check.
type Decision int

const (
	// Wait means the initial session check has not finished; no access
	// decision can be made yet.
	Wait Decision = iota
	// Allow grants access.
	Allow
	// RedirectLogin denies access because the session is anonymous. The
	// originally requested path is preserved so the user can be sent back
	// after authenticating.
	RedirectLogin
	// RedirectHome denies access because the user lacks the required role.
	RedirectHome
)

// Result carries the decision and, for RedirectLogin, the path the user
// originally asked for.
type Result struct {
	Decision Decision
	ReturnTo string
}

// Session is the slice of session-store state the guard reads. The guard is
// a pure function of this state; it never makes a server round-trip.
type Session interface {
	Loading() bool
	IsAuthenticated() bool
	IsAdmin() bool
	IsSuperUser() bool
	User() *models.UserProfile
}

// Check gates access to path. With no allowed roles, any authenticated user
// passes. With allowed roles, access is granted when the user's role is in
// the set, or unconditionally for SuperUser (the role hierarchy makes
// SuperUser a superset of every other privilege).
func Check(s Session, path string, allowed ...models.Role) Result {
	if s.Loading() {
		return Result{Decision: Wait}
	}

	if !s.IsAuthenticated() {
		return Result{Decision: RedirectLogin, ReturnTo: path}
	}

	if len(allowed) == 0 || s.IsSuperUser() {
		return Result{Decision: Allow}
	}

	role := s.User().Role
	for _, r := range allowed {
		if role == r {
			return Result{Decision: Allow}
		}
	}

	return Result{Decision: RedirectHome}
}

// RequireAuth returns an error unless a user is logged in. command names the
// invocation being gated so the error can tell the user what to re-run.
func RequireAuth(s Session, command string) error {
	return toError(Check(s, command), command)
}

// RequireAdmin returns an error unless the current user passes the Admin
// check. SuperUser passes implicitly.
func RequireAdmin(s Session, command string) error {
	if err := RequireAuth(s, command); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return fmt.Errorf("you do not have permission to run '%s' (requires Admin)", command)
	}
	return nil
}

// RequireSuperUser returns an error unless the current user is a SuperUser.
func RequireSuperUser(s Session, command string) error {
	if err := RequireAuth(s, command); err != nil {
		return err
	}
	if !s.IsSuperUser() {
		return fmt.Errorf("you do not have permission to run '%s' (requires SuperUser)", command)
	}
	return nil
}

func toError(res Result, command string) error {
	switch res.Decision {
	case Allow:
		return nil
	case Wait:
		return fmt.Errorf("session check still in progress")
	case RedirectLogin:
		return fmt.Errorf("you must be logged in to run '%s'. Run 'suds login' first, then re-run '%s'", res.ReturnTo, res.ReturnTo)
	default:
		return fmt.Errorf("you do not have permission to run '%s'", command)
	}
}
