package model

import (
	"errors"
	"time"
)

// Role is a closed set of privilege tags. Only one privileged role exists.
type Role string

const (
	// RoleAdmin grants access to the /users/{id} administration endpoints.
	RoleAdmin Role = "admin"
)

// User represents a user account in the system
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"` // "-" hides from JSON output
	Roles        []Role    `db:"-" json:"roles"`
	Following    []string  `db:"-" json:"following"` // insertion order, no duplicates
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID string
	Email  string
	Roles  []Role
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	for _, r := range id.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// RegisterRequest represents the data needed to register a new user.
// Roles are deliberately absent: a self-registration can never grant them.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the signed token issued on register/login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest is the self-service partial update payload.
// Only non-nil fields are applied; roles cannot be set through it.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// AdminUpdateUserRequest is the admin partial update payload, which may
// additionally set roles.
type AdminUpdateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Roles    *[]Role `json:"roles"`
}

// UserUpdate is the set of columns a partial update may touch. The service
// layer fills PasswordHash (never the plaintext) before it reaches the store.
type UserUpdate struct {
	Email        *string
	Name         *string
	PasswordHash *string
	Roles        *[]Role
	AvatarURL    *string
}

// FollowRequest carries the target user id for follow/unfollow.
type FollowRequest struct {
	Following string `json:"following"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to create a user with a taken email
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the login password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid is returned for a malformed, tampered or expired token,
	// or a token whose user no longer exists
	ErrTokenInvalid = errors.New("invalid token")
)
