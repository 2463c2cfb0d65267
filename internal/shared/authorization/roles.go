// Package authorization centralizes role definitions and the policy table
// consulted by every core operation.
package authorization

type UserRole string

const (
	RoleEndUser UserRole = "end_user"
	RoleAgent   UserRole = "agent"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsAgent() bool {
	return r == RoleAgent
}

// IsStaff reports whether the role is agent or admin.
func (r UserRole) IsStaff() bool {
	return r == RoleAgent || r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleEndUser || r == RoleAgent || r == RoleAdmin
}

// ParseUserRole parses a role string, falling back to end_user for
// anything unknown.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleEndUser
}

// Actor is the authenticated principal performing an operation. It is
// passed explicitly into every core call; there is no ambient session state.
type Actor struct {
	ID   uint
	Role UserRole
}

// IsZero reports whether the actor is missing. Core operations reject
// zero actors.
func (a Actor) IsZero() bool {
	return a.ID == 0
}
