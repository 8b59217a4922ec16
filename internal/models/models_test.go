package models

import "testing"

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role        Role
		isAdmin     bool
		isSuperUser bool
	}{
		{RoleUser, false, false},
		{RoleAdmin, true, false},
		{RoleSuperUser, true, true},
		{Role("unknown"), false, false},
	}

	for _, tt := range tests {
		if got := tt.role.IsAdmin(); got != tt.isAdmin {
			t.Errorf("%s.IsAdmin() = %v, want %v", tt.role, got, tt.isAdmin)
		}
		if got := tt.role.IsSuperUser(); got != tt.isSuperUser {
			t.Errorf("%s.IsSuperUser() = %v, want %v", tt.role, got, tt.isSuperUser)
		}
	}
}
