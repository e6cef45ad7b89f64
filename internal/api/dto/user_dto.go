package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,max=120"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6,max=72"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=Admin Manager Employee"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	Name     *string      `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Avatar   *string      `json:"avatar" validate:"omitempty,max=2048"`
	Password *string      `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=Admin Manager Employee"`
}

// MessageResponse carries a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	Email  string      `json:"email"`
	Avatar string      `json:"avatar,omitempty"`
}

// AuthResponse is returned by login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// FromUser maps a domain user.
func FromUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Role: u.Role, Email: u.Email, Avatar: u.Avatar}
}
