package entity

import "time"

// User roles
const (
	RoleUser       = "user"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// User represents an account in the approval workflow. Authentication lives in
// an external collaborator; this record only carries identity, role and the
// submission credit balance.
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Credits    int       `json:"credits"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// IsAdmin returns true if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor returns true if the user holds the supervisor role
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}
