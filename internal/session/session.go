// Package session tracks the signed-in user of the terminal client and
// binds task calls to the session token.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/tasklist/internal/client"
	"github.com/mmynk/tasklist/internal/models"
)

// ErrNotSignedIn is returned by task calls made without a session.
var ErrNotSignedIn = errors.New("not signed in")

// API is the subset of the REST client the session needs.
type API interface {
	Register(ctx context.Context, name, email, password string) (*client.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.PublicUser, error)
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token string, input client.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) (string, error)
}

// Session holds the current token and user. It is safe for concurrent use.
type Session struct {
	api    API
	tokens TokenStore
	logger *slog.Logger

	mu    sync.RWMutex
	token string
	user  *models.PublicUser
}

// New creates a signed-out session.
func New(api API, tokens TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		api:    api,
		tokens: tokens,
		logger: logger,
	}
}

// Restore resolves a stored token to its user. A missing, expired or
// rejected token leaves the session signed out and is cleared from the
// store. Restore reports whether a user was restored.
func (s *Session) Restore(ctx context.Context) bool {
	token, err := s.tokens.Get()
	if err != nil {
		s.logger.Warn("reading stored token", "error", err)
		return false
	}
	if token == "" {
		return false
	}

	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		s.logger.Info("stored token rejected", "error", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("clearing stored token", "error", clearErr)
		}
		s.setSignedOut()
		return false
	}

	s.setSignedIn(token, user)
	s.logger.Info("session restored", "user_id", user.ID)
	return true
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(resp)
}

// Register creates an account and signs in as it.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.adopt(resp)
}

// Logout forgets the token and user.
func (s *Session) Logout() error {
	s.setSignedOut()
	return s.tokens.Clear()
}

// User returns the signed-in user, or nil.
func (s *Session) User() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignedIn reports whether the session has a user.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Token returns the current token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ListTasks(ctx context.Context) ([]models.Task, error) {
	token, err := s.requireToken()
	if err != nil {
		return nil, err
	}
	return s.api.ListTasks(ctx, token)
}

func (s *Session) CreateTask(ctx context.Context, input client.TaskInput) (*models.Task, error) {
	token, err := s.requireToken()
	if err != nil {
		return nil, err
	}
	return s.api.CreateTask(ctx, token, input)
}

func (s *Session) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	token, err := s.requireToken()
	if err != nil {
		return nil, err
	}
	return s.api.UpdateTask(ctx, token, id, patch)
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	token, err := s.requireToken()
	if err != nil {
		return err
	}
	_, err = s.api.DeleteTask(ctx, token, id)
	return err
}

func (s *Session) adopt(resp *client.AuthResponse) error {
	user := resp.User
	s.setSignedIn(resp.Token, &user)
	if err := s.tokens.Set(resp.Token); err != nil {
		// The session still works for this run.
		s.logger.Warn("persisting token", "error", err)
	}
	s.logger.Info("signed in", "user_id", user.ID)
	return nil
}

func (s *Session) requireToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNotSignedIn
	}
	return s.token, nil
}

func (s *Session) setSignedIn(token string, user *models.PublicUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) setSignedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}
