package auth

import (
	"time"

	"github.com/propertymasters/propertymasters/internal/identity"
)

// User represents an authenticated user account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         identity.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
