package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// ValidRole reports whether the given role belongs to the closed set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleWorker:
		return true
	}
	return false
}

// UserStatus represents lifecycle states for an account. Deletion is a
// status transition, never a row removal.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusDeleted UserStatus = "deleted"
)

// User is the identity record backing authentication.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Status       UserStatus
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// Active reports whether the account may authenticate.
func (u *User) Active() bool {
	return u.Status == UserStatusActive
}
