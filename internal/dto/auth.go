package dto

import "time"

// RegisterRequest is the public self-registration payload. It always creates a member.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained by the client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Account   AccountResponse `json:"account"`
}

// ForgotPasswordRequest asks for a reset link to be e-mailed.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest sets a new password using the token from the reset link.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ChangePasswordRequest changes the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
