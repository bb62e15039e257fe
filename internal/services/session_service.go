package services

import (
	"context"
	"fmt"
	"sync"

	"quanan/internal/models"
	"quanan/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// SessionService owns the login lifecycle and the current ActorContext.
// It replaces the ambient token storage of the source app: login
// populates the context, logout clears it, and every other service call
// receives the context explicitly instead of reading global state.
//
// It also implements apiclient.TokenSource, which creates a
// construction cycle with the HTTP-backed auth repository (the
// repository needs the client, the client needs the token source).
// Build the session first and attach the repository afterwards.
type SessionService struct {
	authRepo repositories.AuthRepository
	validate *validator.Validate

	mu           sync.RWMutex
	actor        *models.ActorContext
	refreshToken string
}

// NewSessionService creates a SessionService with no active session.
func NewSessionService() *SessionService {
	return &SessionService{
		validate: validator.New(),
	}
}

// SetAuthRepository attaches the auth adapter once the HTTP client
// exists.
func (s *SessionService) SetAuthRepository(authRepo repositories.AuthRepository) {
	s.authRepo = authRepo
}

// Login exchanges credentials for tokens and derives the ActorContext
// from the access token claims.
func (s *SessionService) Login(ctx context.Context, creds repositories.Credentials) (*models.ActorContext, error) {
	if err := s.validate.Struct(creds); err != nil {
		return nil, &models.ValidationError{Message: "invalid credentials", Err: err}
	}
	if s.authRepo == nil {
		return nil, fmt.Errorf("session: no auth repository configured")
	}

	tokens, err := s.authRepo.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	actor, err := s.Seed(tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.refreshToken = tokens.RefreshToken
	s.mu.Unlock()

	log.Info().
		Str("actor_id", actor.ActorID).
		Str("role", actor.Role.String()).
		Msg("logged in")
	return actor, nil
}

// Seed installs an externally obtained access token as the active
// session. The token is parsed without signature verification: the
// client holds no signing secret, and the backend re-validates every
// request anyway. A shop_id claim marks the actor as a shop owner.
func (s *SessionService) Seed(accessToken string) (*models.ActorContext, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("session: parse access token: %w", err)
	}

	actorID, _ := claims["user_id"].(string)
	if actorID == "" {
		// Some backends use the standard subject claim instead.
		actorID, _ = claims["sub"].(string)
	}
	if actorID == "" {
		return nil, fmt.Errorf("session: access token carries no user id claim")
	}

	role := models.RoleCustomer
	if shopID, _ := claims["shop_id"].(string); shopID != "" {
		role = models.RoleShop
	}

	actor := &models.ActorContext{
		ActorID: actorID,
		Role:    role,
		Token:   accessToken,
	}

	s.mu.Lock()
	s.actor = actor
	s.mu.Unlock()
	return actor, nil
}

// Register creates a new user account.
func (s *SessionService) Register(ctx context.Context, reg repositories.Registration) (*models.User, error) {
	if err := s.validate.Struct(reg); err != nil {
		return nil, &models.ValidationError{Message: "invalid registration", Err: err}
	}
	if s.authRepo == nil {
		return nil, fmt.Errorf("session: no auth repository configured")
	}
	return s.authRepo.Register(ctx, reg)
}

// ForgotPassword triggers the reset-password email.
func (s *SessionService) ForgotPassword(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return &models.ValidationError{Message: "invalid email", Err: err}
	}
	if s.authRepo == nil {
		return fmt.Errorf("session: no auth repository configured")
	}
	return s.authRepo.ForgotPassword(ctx, email)
}

// Logout clears the session.
func (s *SessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = nil
	s.refreshToken = ""
}

// Actor returns the current ActorContext or ErrNotAuthenticated.
func (s *SessionService) Actor() (models.ActorContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.actor == nil {
		return models.ActorContext{}, models.ErrNotAuthenticated
	}
	return *s.actor, nil
}

// Token implements apiclient.TokenSource. It returns the empty string
// while no session is active, which makes outgoing requests
// unauthenticated (exactly what the auth endpoints need).
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.actor == nil {
		return ""
	}
	return s.actor.Token
}
