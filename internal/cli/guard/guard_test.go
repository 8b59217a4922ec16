package guard

import (
	"testing"

	"github.com/suds-dev/suds/internal/models"
)

// fakeSession is a fixed snapshot of session state.
type fakeSession struct {
	loading       bool
	authenticated bool
	role          models.Role
}

func (f fakeSession) Loading() bool         { return f.loading }
func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) IsAdmin() bool         { return f.authenticated && f.role.IsAdmin() }
func (f fakeSession) IsSuperUser() bool     { return f.authenticated && f.role.IsSuperUser() }
func (f fakeSession) User() *models.UserProfile {
	if !f.authenticated {
		return nil
	}
	return &models.UserProfile{ID: 1, Username: "test", Role: f.role}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		sess     fakeSession
		allowed  []models.Role
		want     Decision
		returnTo string
	}{
		{
			name: "loading waits",
			sess: fakeSession{loading: true},
			want: Wait,
		},
		{
			name:     "anonymous redirects to login with return path",
			sess:     fakeSession{},
			want:     RedirectLogin,
			returnTo: "suds cart show",
		},
		{
			name:     "anonymous redirects even for unrestricted pages",
			sess:     fakeSession{},
			allowed:  nil,
			want:     RedirectLogin,
			returnTo: "suds cart show",
		},
		{
			name: "authenticated user passes unrestricted page",
			sess: fakeSession{authenticated: true, role: models.RoleUser},
			want: Allow,
		},
		{
			name:    "user denied admin page",
			sess:    fakeSession{authenticated: true, role: models.RoleUser},
			allowed: []models.Role{models.RoleAdmin},
			want:    RedirectHome,
		},
		{
			name:    "admin passes admin page",
			sess:    fakeSession{authenticated: true, role: models.RoleAdmin},
			allowed: []models.Role{models.RoleAdmin},
			want:    Allow,
		},
		{
			name:    "superuser passes admin page via hierarchy",
			sess:    fakeSession{authenticated: true, role: models.RoleSuperUser},
			allowed: []models.Role{models.RoleAdmin},
			want:    Allow,
		},
		{
			name:    "superuser passes any role set",
			sess:    fakeSession{authenticated: true, role: models.RoleSuperUser},
			allowed: []models.Role{models.RoleUser},
			want:    Allow,
		},
		{
			name:    "admin denied superuser page",
			sess:    fakeSession{authenticated: true, role: models.RoleAdmin},
			allowed: []models.Role{models.RoleSuperUser},
			want:    RedirectHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(tt.sess, "suds cart show", tt.allowed...)

			if res.Decision != tt.want {
				t.Errorf("decision = %v, want %v", res.Decision, tt.want)
			}
			if res.ReturnTo != tt.returnTo {
				t.Errorf("returnTo = %q, want %q", res.ReturnTo, tt.returnTo)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(fakeSession{authenticated: true, role: models.RoleUser}, "suds products create"); err == nil {
		t.Error("expected error for ordinary user, got nil")
	}

	if err := RequireAdmin(fakeSession{authenticated: true, role: models.RoleAdmin}, "suds products create"); err != nil {
		t.Errorf("unexpected error for admin: %v", err)
	}

	// SuperUser passes every Admin check
	if err := RequireAdmin(fakeSession{authenticated: true, role: models.RoleSuperUser}, "suds products create"); err != nil {
		t.Errorf("unexpected error for superuser: %v", err)
	}
}

func TestRequireSuperUser(t *testing.T) {
	if err := RequireSuperUser(fakeSession{authenticated: true, role: models.RoleAdmin}, "suds users ls"); err == nil {
		t.Error("expected error for admin, got nil")
	}

	if err := RequireSuperUser(fakeSession{authenticated: true, role: models.RoleSuperUser}, "suds users ls"); err != nil {
		t.Errorf("unexpected error for superuser: %v", err)
	}
}

func TestRequireAuthMentionsOriginalCommand(t *testing.T) {
	err := RequireAuth(fakeSession{}, "suds sales ls")
	if err == nil {
		t.Fatal("expected error for anonymous session, got nil")
	}

	want := "you must be logged in to run 'suds sales ls'. Run 'suds login' first, then re-run 'suds sales ls'"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
