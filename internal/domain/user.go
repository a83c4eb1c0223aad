package domain

import "time"

// Role is the authorization flag carried by every user.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user passes the admin gate.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserProfile holds the public profile attached one-to-one to a User.
type UserProfile struct {
	ID             string
	UserID         string
	ProfilePicture string
	Bio            string
}

// UserWithProfile is a user joined with its profile. Profile is nil when the
// user has no profile record.
type UserWithProfile struct {
	User    User
	Profile *UserProfile
}
