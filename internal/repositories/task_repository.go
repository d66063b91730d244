package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

var ErrOptimisticLock = errors.New("optimistic locking conflict")

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, ownerID string, in model.TaskInput) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

// FindByID only sees tasks of ownerID; another user's task is not found.
func (r *TaskRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, ownerID string) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// Update writes the editable fields and bumps updated_at, guarded by the
// row version the task was read at.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	if now.Before(task.UpdatedAt) {
		now = task.UpdatedAt
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND owner_id = ? AND version = ?", task.ID, task.OwnerID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"updated_at":  now,
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Task{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return exceptions.ErrTaskNotFound
	}

	return nil
}
