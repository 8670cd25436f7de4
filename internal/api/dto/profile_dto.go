package dto

import (
	"time"

	"github.com/resolvenow/complaint-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse representation without credentials.
type ProfileResponse struct {
	ID       string             `json:"id"`
	FullName string             `json:"full_name"`
	Email    string             `json:"email"`
	Role     domain.ProfileRole `json:"role"`
}

// FromProfile maps a domain profile to its response form.
func FromProfile(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:       profile.ID,
		FullName: profile.FullName,
		Email:    profile.Email,
		Role:     profile.Role,
	}
}
