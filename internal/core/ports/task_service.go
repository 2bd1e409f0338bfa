package ports

import (
	"context"

	"github.com/tasktracker/task-api/internal/core/domain"
)

// TaskService defines use-case operations on tasks. userID is the
// authenticated caller; an empty value means no session.
type TaskService interface {
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, userID, description string) (*domain.Task, error)
	Get(ctx context.Context, userID string, id int64) (*domain.Task, error)
	Update(ctx context.Context, userID string, id int64, description string) error
	Delete(ctx context.Context, userID string, id int64) error
}
