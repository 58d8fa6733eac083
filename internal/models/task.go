package models

import (
	"time"
)

// Status is the board column a task belongs to. It is always derived from
// subtask completion, never set directly.
type Status string

const (
	StatusBacklog   Status = "backlog"
	StatusProgress  Status = "progress"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns a numeric value for sorting by priority.
// Higher numbers indicate higher priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Subtask is a checklist item belonging to a task. Order within a task is
// significant; identity across edits is by text match.
type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task represents a single board task with its subtask checklist.
type Task struct {
	ID          string
	Title       string
	Description string
	Subtasks    []Subtask
	Deadline    time.Time
	Priority    Priority
	Status      Status
	Collapsed   bool
	CreatedAt   time.Time // zero when unknown
}

// NewTask constructs a task with all subtasks uncompleted and status backlog.
func NewTask(id, title, description string, subtaskTexts []string, deadline time.Time, priority Priority) *Task {
	subtasks := make([]Subtask, len(subtaskTexts))
	for i, text := range subtaskTexts {
		subtasks[i] = Subtask{Text: text}
	}
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Subtasks:    subtasks,
		Deadline:    deadline,
		Priority:    priority,
		Status:      StatusBacklog,
	}
}

// Progress summarizes subtask completion.
type Progress struct {
	Completed  int
	Total      int
	Percentage float64
}

// Progress returns the completion summary for the task's subtasks.
// Percentage is 0 when the task has no subtasks.
func (t *Task) Progress() Progress {
	completed := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			completed++
		}
	}
	p := Progress{Completed: completed, Total: len(t.Subtasks)}
	if p.Total > 0 {
		p.Percentage = 100 * float64(p.Completed) / float64(p.Total)
	}
	return p
}

// DeriveStatus recomputes the task status from subtask completion:
// completed when every subtask of a non-empty list is done, progress when
// at least one is done, backlog otherwise.
func (t *Task) DeriveStatus() {
	p := t.Progress()
	switch {
	case p.Total > 0 && p.Completed == p.Total:
		t.Status = StatusCompleted
	case p.Completed > 0:
		t.Status = StatusProgress
	default:
		t.Status = StatusBacklog
	}
}

// ToggleSubtask flips the completion flag of the subtask at index and
// re-derives the task status. It reports false for an out-of-range index
// and leaves the task unchanged.
func (t *Task) ToggleSubtask(index int) bool {
	if index < 0 || index >= len(t.Subtasks) {
		return false
	}
	t.Subtasks[index].Completed = !t.Subtasks[index].Completed
	t.DeriveStatus()
	return true
}

// ToggleCollapse flips the collapsed flag.
func (t *Task) ToggleCollapse() {
	t.Collapsed = !t.Collapsed
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Subtasks = make([]Subtask, len(t.Subtasks))
	copy(c.Subtasks, t.Subtasks)
	return &c
}
