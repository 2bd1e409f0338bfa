package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tasktracker/task-api/internal/core/domain"
)

// TaskRepository implements ports.TaskRepository on top of gorm.
type TaskRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTaskRepository(db *gorm.DB, timeout time.Duration) *TaskRepository {
	return &TaskRepository{db: db, timeout: orDefault(timeout)}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var recs []taskRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, len(recs))
	for i, rec := range recs {
		tasks[i] = rec.toDomain()
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec := taskRecord{UserID: task.UserID, Description: task.Description}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	task.ID = rec.ID
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rec taskRecord
	if err := r.db.WithContext(ctx).Take(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	task := rec.toDomain()
	return &task, nil
}

func (r *TaskRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&taskRecord{}).Where("id = ?", id).Update("task_description", description)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&taskRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
