package dto

import (
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models"
)

// SignInRequest represents login credentials
type SignInRequest struct {
	Email    string `json:"email" example:"ada@uni.edu"`
	Password string `json:"password" example:"secret1"`
}

// SignUpRequest represents a registration form
type SignUpRequest struct {
	Email    string `json:"email" example:"ada@uni.edu"`
	Password string `json:"password" example:"secret1"`
	Name     string `json:"name" example:"Ada Lovelace"`
}

// PasswordResetRequest asks for a recovery link
type PasswordResetRequest struct {
	Email string `json:"email" example:"ada@uni.edu"`
}

// PasswordRecoveryRequest exchanges a recovery link token for a session
type PasswordRecoveryRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdatePasswordRequest sets a new password for the signed-in user
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// AuthFormValues are echoed back on failure so the form stays populated.
// Passwords are never echoed.
type AuthFormValues struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// AuthFormError is the payload of a failed auth form submission.
type AuthFormError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Values  AuthFormValues    `json:"values"`
}

// SessionResponse is returned by sign-in, sign-up and session lookups.
type SessionResponse struct {
	Session       *gateway.Session `json:"session"`
	Profile       *models.User     `json:"profile,omitempty"`
	ProfileLoaded bool             `json:"profileLoaded"`
}
