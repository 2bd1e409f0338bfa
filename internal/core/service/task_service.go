package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tasktracker/task-api/internal/core/domain"
	"github.com/tasktracker/task-api/internal/core/ports"
)

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	tasks, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, userID, description string) (*domain.Task, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !domain.ValidTaskDescription(description) {
		return nil, errDescriptionTooLong
	}

	task := &domain.Task{UserID: userID, Description: description}
	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Int64("task_id", task.ID).Str("user_id", userID).Msg("task created")
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, userID string, id int64) (*domain.Task, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.owned(ctx, userID, id)
}

func (s *TaskService) Update(ctx context.Context, userID string, id int64, description string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if !domain.ValidTaskDescription(description) {
		return errDescriptionTooLong
	}

	if err := s.repo.UpdateDescription(ctx, id, description); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("update task %d: %w", id, err)
	}

	s.logger.Info().Int64("task_id", id).Str("user_id", userID).Msg("task updated")
	return nil
}

func (s *TaskService) Delete(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	s.logger.Info().Int64("task_id", id).Str("user_id", userID).Msg("task deleted")
	return nil
}

// owned loads the task and checks that userID owns it. Existence is checked
// before ownership: a missing id is ErrTaskNotFound, a foreign one ErrForbidden.
func (s *TaskService) owned(ctx context.Context, userID string, id int64) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	if !task.OwnedBy(userID) {
		s.logger.Warn().Int64("task_id", id).Str("user_id", userID).Msg("access to foreign task")
		return nil, domain.ErrForbidden
	}
	return task, nil
}

var errDescriptionTooLong = fmt.Errorf("%w: task length cannot exceed %d characters",
	domain.ErrInvalidInput, domain.MaxTaskDescriptionLength)
