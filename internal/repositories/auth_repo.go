package repositories

import (
	"context"

	"quanan/internal/models"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration is the register request body. The password travels to
// the backend over the wire and is never stored client-side.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// TokenPair is the backend's response to a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthRepository defines the adapter contract to the auth API.
type AuthRepository interface {
	Login(ctx context.Context, creds Credentials) (*TokenPair, error)
	Register(ctx context.Context, reg Registration) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
}
