package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	repository "task-desk.com/task-desk/internal/repositories"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

var ErrTaskConflict = &exceptions.Exception{
	Kind:       exceptions.KindValidation,
	Message:    "task was modified concurrently, reload and try again",
	StatusCode: http.StatusConflict,
}

type TaskService struct {
	repo *repository.TaskRepository
	log  logrus.FieldLogger
}

func NewTaskService(repo *repository.TaskRepository, log logrus.FieldLogger) *TaskService {
	return &TaskService{
		repo: repo,
		log:  log,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	task, err := s.repo.CreateTask(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task_id": task.ID, "owner_id": ownerID}).Info("task created")
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, id string) (*model.Task, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.repo.List(ctx, ownerID)
}

// UpdateTask replaces the editable fields of the task. Concurrent writers are
// last-write-wins from the caller's view; the version check only keeps this
// read-modify-write from interleaving with another one.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, id string, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Status = in.Status

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrOptimisticLock) {
			s.log.WithField("task_id", id).Warn("optimistic lock conflict updating task")
			return nil, ErrTaskConflict
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task_id": id, "owner_id": ownerID}).Info("task updated")
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"task_id": id, "owner_id": ownerID}).Info("task deleted")
	return nil
}
