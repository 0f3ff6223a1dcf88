// Package domain holds the auth context's view of a user account.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account as the auth flow sees it.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	TeamID       *uuid.UUID
	LastLogin    *time.Time
}

// IsActive treats status case-insensitively; old rows carry mixed casing.
func (u *User) IsActive() bool {
	return strings.EqualFold(u.Status, "active")
}
