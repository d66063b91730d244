package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

var errTaskIDRequired = exceptions.Validation("task id is required")

// taskList accepts both a bare array and the {"count", "tasks"} envelope.
type taskList []model.Task

func (l *taskList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var env struct {
			Tasks []model.Task `json:"tasks"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		*l = env.Tasks
		return nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return err
	}
	*l = tasks
	return nil
}

// ListTasks returns every task of the authenticated user in store order.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks taskList
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		return []model.Task{}, nil
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, errTaskIDRequired
	}

	var task model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask validates in before any request is made.
func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in model.TaskInput) (*model.Task, error) {
	if id == "" {
		return nil, errTaskIDRequired
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) (*model.DeleteResult, error) {
	if id == "" {
		return nil, errTaskIDRequired
	}

	var res model.DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	if res.Message == "" {
		res.Message = "Task removed"
	}
	return &res, nil
}
