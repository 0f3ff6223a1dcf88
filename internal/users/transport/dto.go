// Package transport defines the wire representations for the users API.
package transport

import (
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/users/domain"

	"github.com/google/uuid"
)

// CreateUserRequest is the admin payload for provisioning an account.
type CreateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	TeamID   string `json:"teamId"`
}

// UpdateUserRequest edits an account. Password is optional.
type UpdateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status" binding:"required"`
	TeamID   string `json:"teamId"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	TeamID    *uuid.UUID `json:"teamId"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToUserResponse maps an account for the wire.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		TeamID:    user.TeamID,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses maps a list of accounts.
func ToUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, ToUserResponse(user))
	}
	return out
}
