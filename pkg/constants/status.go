package constants

import "strings"

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// Statuses returns every status in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}

// ParseStatus accepts the wire values case-insensitively, plus the
// in_progress / inprogress spellings used on the command line.
func ParseStatus(v string) (TaskStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(v))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)

	switch key {
	case "pending":
		return StatusPending, true
	case "in progress", "inprogress":
		return StatusInProgress, true
	case "completed", "done":
		return StatusCompleted, true
	}
	return "", false
}

// StatusStyle is the badge styling shown next to a task.
type StatusStyle struct {
	Color string `json:"color"`
	Class string `json:"class"`
}

var statusStyles = map[TaskStatus]StatusStyle{
	StatusPending:    {Color: "yellow", Class: "bg-yellow-100 text-yellow-800 border-yellow-200"},
	StatusInProgress: {Color: "blue", Class: "bg-blue-100 text-blue-800 border-blue-200"},
	StatusCompleted:  {Color: "green", Class: "bg-green-100 text-green-800 border-green-200"},
}

// Style is total: unknown statuses get a neutral badge.
func (s TaskStatus) Style() StatusStyle {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return StatusStyle{Color: "gray", Class: "bg-gray-100 text-gray-800 border-gray-200"}
}
