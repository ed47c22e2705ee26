// Package auth provides authentication services for RouteLog Pro.
package auth

import (
	"net/mail"
	"time"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// User represents an authenticated user in the system.
type User struct {
	ID           string    `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash string    `json:"-"` // bcrypt hash, never exposed in API
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate validates the registration request.
func (r *RegisterRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Username == "" {
		errors = append(errors, FieldError{
			Field:   "username",
			Message: "username is required",
			Code:    "REQUIRED",
		})
	}

	if len(r.Password) < MinPasswordLength {
		errors = append(errors, FieldError{
			Field:   "password",
			Message: "password must be at least 8 characters",
			Code:    "TOO_SHORT",
		})
	}

	if r.Password != r.ConfirmPassword {
		errors = append(errors, FieldError{
			Field:   "confirmPassword",
			Message: "passwords do not match",
			Code:    "MISMATCH",
		})
	}

	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			errors = append(errors, FieldError{
				Field:   "email",
				Message: "email address is not valid",
				Code:    "INVALID",
			})
		}
	}

	return errors
}

// LoginRequest represents the request body for password authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r *LoginRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Username == "" {
		errors = append(errors, FieldError{
			Field:   "username",
			Message: "username is required",
			Code:    "REQUIRED",
		})
	}

	if r.Password == "" {
		errors = append(errors, FieldError{
			Field:   "password",
			Message: "password is required",
			Code:    "REQUIRED",
		})
	}

	return errors
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// TokenResponse represents the response after successful authentication.
type TokenResponse struct {
	// AccessToken is the JWT access token for API authentication.
	AccessToken string `json:"accessToken"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`

	// ExpiresIn is the number of seconds until the access token expires.
	ExpiresIn int64 `json:"expiresIn"`

	// RefreshToken is the opaque token used to obtain new access tokens.
	RefreshToken string `json:"refreshToken,omitempty"`

	// User contains the authenticated user's information.
	User *User `json:"user"`
}

// RefreshTokenRequest represents the request to refresh an access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate validates the refresh token request.
func (r *RefreshTokenRequest) Validate() []FieldError {
	var errors []FieldError

	if r.RefreshToken == "" {
		errors = append(errors, FieldError{
			Field:   "refreshToken",
			Message: "refresh token is required",
			Code:    "REQUIRED",
		})
	}

	return errors
}
