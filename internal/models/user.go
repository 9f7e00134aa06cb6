package models

import "time"

// UserRole decides which side of the ledger a user looks at.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// IsAdmin reports whether the role is the operator role.
func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// User represents the user model in the database. Non-admin users are the
// clients the operator bills and pays.
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Role                UserRole   `gorm:"size:16;not null;default:user" json:"role"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}
