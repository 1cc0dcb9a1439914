package dto

import (
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the ID token obtained from Google sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UpdateUserRequest defines the fields a user may change on their profile.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Currency *string `json:"currency" binding:"omitempty,uppercase,len=3"`
	Locale   *string `json:"locale" binding:"omitempty,min=2,max=10"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID      string             `json:"userID"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Plan        string             `json:"plan"`
	Preferences domain.Preferences `json:"preferences"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its public DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Plan:        string(u.Plan),
		Preferences: u.Preferences,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
