// Package transport defines the wire representations for the auth API.
package transport

import (
	"github.com/Iamalive23802/Dream-Trade/internal/auth/domain"

	"github.com/google/uuid"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID       uuid.UUID  `json:"id"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	TeamID   *uuid.UUID `json:"teamId"`
}

// LoginResponse carries the token, the account and the new-lead count
// computed against the previous login.
type LoginResponse struct {
	Token    string       `json:"token"`
	User     UserResponse `json:"user"`
	NewLeads int          `json:"newLeads"`
}

// ToUserResponse maps an account for the wire.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
		TeamID:   user.TeamID,
	}
}
