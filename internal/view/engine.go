// Package view derives what a task list shows from the full collection and
// the current filter, search and sort selection. Everything here is pure.
package view

import (
	"slices"
	"strings"

	"task-desk.com/task-desk/pkg/constants"
	model "task-desk.com/task-desk/pkg/models"
)

const (
	emptyFiltered   = "No tasks match your filters. Try adjusting your search or filter criteria."
	emptyCollection = "You have no tasks yet. Create a new task to get started!"
)

type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

type Result struct {
	Tasks        []model.Task `json:"tasks"`
	Stats        Stats        `json:"stats"`
	Showing      int          `json:"showing"`
	EmptyMessage string       `json:"emptyMessage,omitempty"`
}

// Derive filters and sorts tasks for display and aggregates stats over the
// whole, unfiltered collection. The input slice is never modified.
func Derive(tasks []model.Task, p Params) Result {
	visible := Sort(Filter(tasks, p), p.SortKey, p.Direction)

	res := Result{
		Tasks:   visible,
		Stats:   Aggregate(tasks),
		Showing: len(visible),
	}

	if len(visible) == 0 {
		if p.Filtering() {
			res.EmptyMessage = emptyFiltered
		} else {
			res.EmptyMessage = emptyCollection
		}
	}

	return res
}

// Filter returns a new slice with the tasks matching the status filter and
// the search term.
func Filter(tasks []model.Task, p Params) []model.Task {
	term := strings.ToLower(p.Search)
	status, filtered := p.status()
	out := make([]model.Task, 0, len(tasks))

	for _, t := range tasks {
		if filtered && t.Status != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			continue
		}
		out = append(out, t)
	}

	return out
}

// Sort returns a sorted copy of tasks. The sort is stable and descending
// reverses the comparator, so ties keep their prior order in both directions.
// Tasks with an empty title or status rank last whatever the direction.
func Sort(tasks []model.Task, key SortKey, dir Direction) []model.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []model.Task{}
	}

	sign := 1
	if dir == Descending {
		sign = -1
	}

	slices.SortStableFunc(out, func(a, b model.Task) int {
		switch key {
		case SortByTitle:
			return compareText(a.Title, b.Title, sign)
		case SortByStatus:
			return compareText(string(a.Status), string(b.Status), sign)
		case SortByUpdatedAt:
			return sign * a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return sign * a.CreatedAt.Compare(b.CreatedAt)
		}
	})

	return out
}

func compareText(a, b string, sign int) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return sign * strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

func Aggregate(tasks []model.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case constants.StatusPending:
			s.Pending++
		case constants.StatusInProgress:
			s.InProgress++
		case constants.StatusCompleted:
			s.Completed++
		}
	}
	return s
}
