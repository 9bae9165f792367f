package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/tasklist/internal/auth"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/storage"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

// AuthService registers and authenticates users and resolves bearer tokens.
type AuthService struct {
	authenticator auth.Authenticator
	issuer        *auth.TokenIssuer
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, issuer *auth.TokenIssuer, users storage.UserStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		issuer:        issuer,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and returns a token for it.
// Fails with models.FieldErrors on invalid input and auth.ErrEmailExists
// when the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = models.TrimField(name)
	email = models.NormalizeEmail(email)
	s.logger.Info("Register request", "email", email)

	// A taken email is reported as such whatever else is wrong with the request.
	if email != "" {
		_, err := s.users.GetUserByEmail(ctx, email)
		if err == nil {
			s.logger.Warn("Registration rejected", "email", email, "error", auth.ErrEmailExists)
			return nil, auth.ErrEmailExists
		}
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Registration failed", "email", email, "error", err)
			return nil, fmt.Errorf("looking up email: %w", err)
		}
	}

	if errs := models.ValidateRegistration(name, email, password); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			s.logger.Warn("Registration rejected", "email", email, "error", err)
		} else {
			s.logger.Error("Registration failed", "email", email, "error", err)
		}
		return nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns a freshly signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = models.NormalizeEmail(email)
	s.logger.Info("Login request", "email", email)

	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to its user.
// Every failure wraps ErrUnauthorized except storage errors.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s no longer exists", ErrUnauthorized, claims.UserID())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}

	return user, nil
}
