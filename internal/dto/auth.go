package dto

import (
	"time"

	"guidehub_backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	IsVerified     bool            `json:"is_verified"`
	IsPremium      bool            `json:"is_premium"`
	SubscriptionID *string         `json:"subscription_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" validate:"required"`
	NewPassword     string `json:"new_password" binding:"required" validate:"required,min=8"`
}
