package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/notify"
	"github.com/clothsy/storefront/internal/token"
	"github.com/go-playground/validator/v10"
)

// SessionService holds the authenticated user for the process lifetime, the
// Go counterpart of the browser auth context. The persisted token is the only
// state that outlives the process.
type SessionService struct {
	api      *api.Client
	tokens   *token.Store
	notifier notify.Notifier
	validate *validator.Validate

	mu          sync.RWMutex
	user        *models.User
	subscribers []func(authenticated bool)

	busy atomic.Bool
}

func NewSessionService(apiClient *api.Client, tokens *token.Store, notifier notify.Notifier) *SessionService {
	return &SessionService{
		api:      apiClient,
		tokens:   tokens,
		notifier: notifier,
		validate: validator.New(),
	}
}

// Subscribe registers fn to run on every authenticated-state transition.
// Edge-triggered: fn fires when the flag flips, never on repeated logins of
// the same state.
func (s *SessionService) Subscribe(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

// CheckSession hydrates the session from a persisted token on startup. Any
// failure discards the token and leaves the session empty; the caller never
// sees an error.
func (s *SessionService) CheckSession(ctx context.Context) {

	if _, ok := s.tokens.Load(); !ok {
		return
	}

	user, err := s.api.Auth.Profile(ctx)
	if err != nil {
		slog.Info("stored token rejected, starting logged out", slog.String("error", err.Error()))
		s.tokens.Clear()

		return
	}

	s.setUser(user)
}

func (s *SessionService) Login(ctx context.Context, email, password string) errors.Outcome {

	s.busy.Store(true)
	defer s.busy.Store(false)

	req := &models.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		s.notifier.Error("Please enter a valid email and password")

		return errors.Fail("Please enter a valid email and password")
	}

	resp, err := s.api.Auth.Login(ctx, req)
	if err != nil {
		message := errors.UserMessage(err, "Login failed")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	if err := s.tokens.Save(resp.Token); err != nil {
		slog.Error("failed to persist token", slog.String("error", err.Error()))
	}

	s.setUser(&resp.User)
	s.notifier.Success("Login successful!")

	return errors.Ok()
}

func (s *SessionService) Register(ctx context.Context, name, email, password string) errors.Outcome {

	s.busy.Store(true)
	defer s.busy.Store(false)

	req := &models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		s.notifier.Error("Please fill in all registration fields")

		return errors.Fail("Please fill in all registration fields")
	}

	resp, err := s.api.Auth.Register(ctx, req)
	if err != nil {
		message := errors.UserMessage(err, "Registration failed")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	if err := s.tokens.Save(resp.Token); err != nil {
		slog.Error("failed to persist token", slog.String("error", err.Error()))
	}

	s.setUser(&resp.User)
	s.notifier.Success("Registration successful!")

	return errors.Ok()
}

// Logout clears the token and session synchronously. It cannot fail.
func (s *SessionService) Logout() {
	s.tokens.Clear()
	s.setUser(nil)
	s.notifier.Success("Logged out successfully")
}

// BecomeSeller upgrades the account role. On success only Role changes on the
// session record; every other field and the token stay as they were.
func (s *SessionService) BecomeSeller(ctx context.Context) errors.Outcome {

	if !s.IsAuthenticated() {
		s.notifier.Error("Please login first")

		return errors.Fail("Please login first")
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	updated, err := s.api.Users.BecomeSeller(ctx)
	if err != nil {
		message := errors.UserMessage(err, "Failed to become seller")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	s.mu.Lock()
	if s.user != nil {
		merged := *s.user
		merged.Role = updated.Role
		s.user = &merged
	}
	s.mu.Unlock()

	s.notifier.Success("You are now a seller!")

	return errors.Ok()
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user != nil
}

// User returns a copy of the session user, or nil when logged out.
func (s *SessionService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	user := *s.user

	return &user
}

// Busy reports whether a session mutation is in flight, so dependent UI can
// disable its controls.
func (s *SessionService) Busy() bool {
	return s.busy.Load()
}

func (s *SessionService) setUser(user *models.User) {

	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = user
	isAuthenticated := s.user != nil
	subscribers := make([]func(bool), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	if wasAuthenticated == isAuthenticated {
		return
	}

	for _, fn := range subscribers {
		fn(isAuthenticated)
	}
}
