package domain

// Role is a tag granted to a user by the identity service.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
	RoleUser      Role = "User"
)

// User models the authenticated actor attached to every inbound call.
// It is never persisted by this service; it only decides visibility and
// stamps the audit fields.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Roles    []Role `json:"roles"`
}

// IsPrivileged reports whether the user carries the administrative role.
func (u User) IsPrivileged() bool {
	return HasAnyRole(u.Roles, []Role{RoleAdmin})
}

// HasAnyRole reports whether any of userRoles appears in validRoles.
// Stateless set predicate, no hierarchy between roles.
func HasAnyRole(userRoles, validRoles []Role) bool {
	for _, r := range userRoles {
		for _, v := range validRoles {
			if r == v {
				return true
			}
		}
	}
	return false
}

// UserSummary is the display-ready view of a user resolved from the
// identity service. Ephemeral: fetched on demand, never stored.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
