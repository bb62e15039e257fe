package repositories

import (
	"context"
	"fmt"

	"quanan/internal/models"
	"quanan/pkg/apiclient"
)

// HTTPAuthRepository implements AuthRepository against the backend
// auth endpoints. Login and register are unauthenticated calls; the
// shared client simply sends no bearer header while the session holds
// no token.
type HTTPAuthRepository struct {
	client *apiclient.Client
}

// NewHTTPAuthRepository creates a new instance of HTTPAuthRepository.
func NewHTTPAuthRepository(client *apiclient.Client) *HTTPAuthRepository {
	return &HTTPAuthRepository{
		client: client,
	}
}

// Login exchanges credentials for a token pair.
func (r *HTTPAuthRepository) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var tokens TokenPair
	if err := r.client.Post(ctx, "/auth/login", creds, &tokens, nil); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &tokens, nil
}

// Register creates a new user account.
func (r *HTTPAuthRepository) Register(ctx context.Context, reg Registration) (*models.User, error) {
	var user models.User
	if err := r.client.Post(ctx, "/auth/register", reg, &user, nil); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

// ForgotPassword triggers the reset-password email.
func (r *HTTPAuthRepository) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := r.client.Post(ctx, "/auth/forgot-password", body, nil, nil); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}
