// Package domain contains the users bounded context's core types.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is a staff account managed by admins.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	TeamID       *uuid.UUID
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive treats status case-insensitively; old rows carry mixed casing.
func (u *User) IsActive() bool {
	return strings.EqualFold(u.Status, StatusActive)
}
