package domain

import "testing"

func TestHasAnyRole(t *testing.T) {
	cases := []struct {
		name  string
		user  []Role
		valid []Role
		want  bool
	}{
		{"single match", []Role{RoleAdmin}, []Role{RoleAdmin}, true},
		{"match among several", []Role{RoleUser, RoleModerator}, []Role{RoleModerator}, true},
		{"no match", []Role{RoleUser}, []Role{RoleAdmin}, false},
		{"empty user roles", nil, []Role{RoleAdmin}, false},
		{"empty valid roles", []Role{RoleAdmin}, nil, false},
		{"both empty", nil, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasAnyRole(tc.user, tc.valid); got != tc.want {
				t.Errorf("HasAnyRole(%v, %v) = %v, want %v", tc.user, tc.valid, got, tc.want)
			}
		})
	}
}

func TestUser_IsPrivileged(t *testing.T) {
	if !(User{Roles: []Role{RoleUser, RoleAdmin}}).IsPrivileged() {
		t.Error("user holding Admin should be privileged")
	}
	if (User{Roles: []Role{RoleUser, RoleModerator}}).IsPrivileged() {
		t.Error("user without Admin should not be privileged")
	}
}
