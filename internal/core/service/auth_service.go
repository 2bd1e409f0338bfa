package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tasktracker/task-api/internal/core/domain"
	"github.com/tasktracker/task-api/internal/core/ports"
)

// AuthService implements signup, login, logout and profile lookup.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionStore
	logger   zerolog.Logger
	newID    func() string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
}

func (s *AuthService) Signup(ctx context.Context, username, password, previousToken string) (*domain.User, *domain.Session, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password cannot be empty", domain.ErrInvalidInput)
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("signup: %w", err)
	}
	if exists {
		return nil, nil, domain.ErrConflict
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("signup: hash password: %w", err)
	}

	user := &domain.User{
		ID:             s.newID(),
		Username:       username,
		HashedPassword: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, nil, domain.ErrConflict
		}
		return nil, nil, fmt.Errorf("signup: %w", err)
	}

	session, err := s.startSession(ctx, user.ID, previousToken)
	if err != nil {
		return nil, nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("user signed up")
	return publicUser(user), session, nil
}

func (s *AuthService) Login(ctx context.Context, username, password, previousToken string) (*domain.User, *domain.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("username", username).Msg("login for unknown user")
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.logger.Debug().Str("user_id", user.ID).Msg("login with wrong password")
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.startSession(ctx, user.ID, previousToken)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return publicUser(user), session, nil
}

// Logout drops the session; it succeeds for unknown or empty tokens.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUser(user), nil
}

// startSession issues a fresh token, discarding the one the request came with.
func (s *AuthService) startSession(ctx context.Context, userID, previousToken string) (*domain.Session, error) {
	if previousToken != "" {
		if err := s.sessions.Delete(ctx, previousToken); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drop previous session")
		}
	}
	return s.sessions.Create(ctx, userID)
}

func publicUser(u *domain.User) *domain.User {
	return &domain.User{ID: u.ID, Username: u.Username}
}
