// Package board holds one task list as a user sees it: the collection fetched
// from the store, the current view parameters, and the mutations made through
// it. The store stays the source of truth; the board only patches its copy
// after the store has confirmed a change.
package board

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"task-desk.com/task-desk/internal/view"
	model "task-desk.com/task-desk/pkg/models"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("board is closed")

type TaskStore interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, in model.TaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) (*model.DeleteResult, error)
}

type Board struct {
	mu     sync.Mutex
	store  TaskStore
	log    logrus.FieldLogger
	tasks  []model.Task
	params view.Params
	closed bool
}

type Option func(*Board)

func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Board) {
		b.log = l
	}
}

func WithParams(p view.Params) Option {
	return func(b *Board) {
		b.params = p
	}
}

func New(store TaskStore, opts ...Option) *Board {
	b := &Board{
		store:  store,
		log:    logrus.StandardLogger(),
		params: view.DefaultParams(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches the full collection. A failed load leaves the previous
// collection in place.
func (b *Board) Load(ctx context.Context) error {
	if err := b.alive(); err != nil {
		return err
	}

	tasks, err := b.store.ListTasks(ctx)
	if err != nil {
		b.log.WithError(err).Warn("failed to load tasks")
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.tasks = slices.Clone(tasks)
	return nil
}

// Create adds the confirmed task at the front of the collection.
func (b *Board) Create(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := b.alive(); err != nil {
		return nil, err
	}

	task, err := b.store.CreateTask(ctx, in)
	if err != nil {
		return nil, err
	}

	b.apply(func() {
		b.tasks = slices.Insert(b.tasks, 0, *task)
	})
	b.log.WithField("task_id", task.ID).Info("task created")
	return task, nil
}

// Update replaces the task with the store's updated copy.
func (b *Board) Update(ctx context.Context, id string, in model.TaskInput) (*model.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := b.alive(); err != nil {
		return nil, err
	}

	task, err := b.store.UpdateTask(ctx, id, in)
	if err != nil {
		return nil, err
	}

	b.apply(func() {
		if i := b.indexOf(task.ID); i >= 0 {
			b.tasks[i] = *task
		}
	})
	b.log.WithField("task_id", task.ID).Info("task updated")
	return task, nil
}

// Delete removes the task once the store confirms. An unknown id surfaces the
// store's not-found error and leaves the collection untouched.
func (b *Board) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	if err := b.alive(); err != nil {
		return nil, err
	}

	res, err := b.store.DeleteTask(ctx, id)
	if err != nil {
		return nil, err
	}

	b.apply(func() {
		if i := b.indexOf(id); i >= 0 {
			b.tasks = slices.Delete(b.tasks, i, i+1)
		}
	})
	b.log.WithField("task_id", id).Info("task deleted")
	return res, nil
}

func (b *Board) ToggleSort(key view.SortKey) {
	b.mu.Lock()
	b.params = b.params.ToggleSort(key)
	b.mu.Unlock()
}

func (b *Board) SetParams(p view.Params) {
	b.mu.Lock()
	b.params = p
	b.mu.Unlock()
}

func (b *Board) Params() view.Params {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params
}

// View derives the visible tasks and stats from the current state.
func (b *Board) View() view.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return view.Derive(b.tasks, b.params)
}

// Close ends the board's lifetime. Store calls still in flight complete, but
// their results are no longer applied.
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

func (b *Board) alive() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

func (b *Board) apply(patch func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	patch()
}

func (b *Board) indexOf(id string) int {
	return slices.IndexFunc(b.tasks, func(t model.Task) bool {
		return t.ID == id
	})
}
