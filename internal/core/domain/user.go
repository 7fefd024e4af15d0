package domain

import (
	"errors"
	"time"
)

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// BootstrapUsername is the account created automatically on first run when no
// administrator exists yet.
const BootstrapUsername = "admin"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials is the single failure returned for both unknown
// usernames and wrong passwords, so callers cannot tell which part was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

var ErrForbidden = errors.New("access forbidden")

// User models an account in the system. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FullName     string    `json:"full_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}
