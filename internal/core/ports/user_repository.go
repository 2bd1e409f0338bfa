package ports

import (
	"context"

	"github.com/tasktracker/task-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	// Create inserts a new user. A username collision is reported as domain.ErrConflict.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
