package domain

import "time"

// Role enumerates the HR roles known to the client.
type Role string

const (
	RoleGeneralManager Role = "General Manager"
	RoleHRManager      Role = "HR Manager"
	RoleTeamLeader     Role = "Team Leader"
	RoleEmployee       Role = "Employee"
)

// Roles lists the closed role set in display order.
var Roles = []Role{RoleGeneralManager, RoleHRManager, RoleTeamLeader, RoleEmployee}

// Known reports whether r is one of the declared roles.
func (r Role) Known() bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// Identity is the signed-in user as derived at login.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Token represents decoded session token metadata.
type Token struct {
	Raw       string
	SubjectID string
	Name      string
	Role      Role
	ExpiresAt time.Time
}

// ValidAt reports whether the token is still usable at now.
func (t Token) ValidAt(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.Before(t.ExpiresAt)
}

// Credentials are what the user types on the login screen.
type Credentials struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
