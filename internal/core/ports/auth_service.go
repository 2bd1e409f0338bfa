package ports

import (
	"context"

	"github.com/tasktracker/task-api/internal/core/domain"
)

type AuthService interface {
	// Signup registers a user and opens a session for it. previousToken, when
	// non-empty, is the session the request arrived with; it is discarded.
	Signup(ctx context.Context, username, password, previousToken string) (*domain.User, *domain.Session, error)
	Login(ctx context.Context, username, password, previousToken string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
