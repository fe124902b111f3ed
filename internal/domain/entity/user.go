package entity

import "time"

// Role is the authorization role stored on a user row.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the aggregate root for the account domain.
// PasswordHash is a bcrypt hash and never leaves the auth boundary.
type User struct {
	ID             string
	Email          string
	GithubUsername string // optional, unique when set
	PasswordHash   string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
