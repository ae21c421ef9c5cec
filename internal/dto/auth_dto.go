package dto

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest registers an account and sends a verification code
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jane@example.com"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// SigninRequest exchanges a verification code for an access token
type SigninRequest struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verificationCode" binding:"required,len=6,numeric" example:"123456"`
}

// ResendCodeRequest asks for a fresh verification code
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest changes the caller's display name. At least one field is required.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,max=100"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Verified          bool       `json:"verified"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
	GitHubUsername    *string    `json:"githubUsername,omitempty"`
	GitHubAvatarURL   *string    `json:"githubAvatarUrl,omitempty"`
	GitHubConnectedAt *time.Time `json:"githubConnectedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// SigninResponse carries the bearer token
type SigninResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}
