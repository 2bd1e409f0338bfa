package ports

import (
	"context"

	"github.com/tasktracker/task-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// ListByOwner returns every task owned by userID ordered by id.
	ListByOwner(ctx context.Context, userID string) ([]domain.Task, error)
	// Create inserts the task and sets its ID.
	Create(ctx context.Context, task *domain.Task) error
	// FindByID looks a task up regardless of owner so callers can tell
	// a missing task apart from a foreign one.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	UpdateDescription(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) error
}
