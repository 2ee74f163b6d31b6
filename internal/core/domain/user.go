package domain

import (
	"errors"
	"time"
)

const (
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

var ErrMissingField = errors.New("missing required field")
var ErrInvalidRole = errors.New("invalid role")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrInvalidToken = errors.New("invalid token")

// User models a registered account. Immutable after registration: no update
// or delete path exists.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated actor attached to a request by the auth
// middleware.
type Identity struct {
	Username string
	Role     string
}

// SessionClaims is the payload reconstructed from a verified session token.
// It is never persisted; the signed token alone is the source of truth.
type SessionClaims struct {
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ValidRole reports whether role is one of the known role labels.
func ValidRole(role string) bool {
	return role == RoleSeller || role == RoleBuyer
}

// CanMutateCatalog is the single authorization predicate shared by all
// catalog mutations.
func (i Identity) CanMutateCatalog() bool {
	return i.Role == RoleSeller
}
