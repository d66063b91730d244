package model

import (
	"strings"
	"time"

	"task-desk.com/task-desk/pkg/constants"
	"task-desk.com/task-desk/pkg/exceptions"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"_id"`
	OwnerID     string               `gorm:"size:36;index;not null" json:"-"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `json:"description"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Version     uint                 `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// TaskInput carries the fields a client may set on create and update.
type TaskInput struct {
	Title       string               `json:"title" validate:"required,max=200"`
	Description string               `json:"description" validate:"max=2000"`
	Status      constants.TaskStatus `json:"status"`
}

// Validate normalises the input in place: the title is trimmed and an empty
// status becomes Pending.
func (in *TaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return exceptions.ErrTitleRequired
	}

	if in.Status == "" {
		in.Status = constants.StatusPending
	}
	if !in.Status.Valid() {
		return exceptions.Validation("status must be one of Pending, In Progress, Completed")
	}

	return nil
}

// Input returns the editable fields of t, as a form would prefill them.
func (t Task) Input() TaskInput {
	status := t.Status
	if status == "" {
		status = constants.StatusPending
	}
	return TaskInput{Title: t.Title, Description: t.Description, Status: status}
}

// Edited reports whether the task was touched after creation.
func (t Task) Edited() bool {
	return !t.UpdatedAt.IsZero() && !t.UpdatedAt.Equal(t.CreatedAt)
}

type DeleteResult struct {
	Message string `json:"message"`
}
