package models

import (
	"time"
)

// DeadlineFormat is the wire layout for task deadlines (calendar date).
const DeadlineFormat = "2006-01-02"

// TaskRecord is the external shape of a task as carried by the tasks
// resource. Remote records are untrusted: use FromRecord to normalize one
// into a Task.
type TaskRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subtasks    []Subtask `json:"subtasks"`
	Deadline    string    `json:"deadline"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	IsCollapsed bool      `json:"isCollapsed"`
	CreatedAt   string    `json:"createdAt,omitempty"`
}

// Record converts the task to its wire shape.
func (t *Task) Record() TaskRecord {
	rec := TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Subtasks:    make([]Subtask, len(t.Subtasks)),
		Deadline:    t.Deadline.Format(DeadlineFormat),
		Priority:    t.Priority,
		Status:      t.Status,
		IsCollapsed: t.Collapsed,
	}
	copy(rec.Subtasks, t.Subtasks)
	if !t.CreatedAt.IsZero() {
		rec.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	return rec
}

// FromRecord builds a Task from an externally-sourced record, applying
// defaults for missing fields. The record's status field is ignored: status
// is always re-derived from subtask completion, so a stale or inconsistent
// remote status self-heals here.
func FromRecord(rec TaskRecord) *Task {
	t := &Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Subtasks:    make([]Subtask, len(rec.Subtasks)),
		Collapsed:   rec.IsCollapsed,
	}
	copy(t.Subtasks, rec.Subtasks)

	if rec.Priority.IsValid() {
		t.Priority = rec.Priority
	} else {
		t.Priority = PriorityMedium
	}
	if d, err := time.Parse(DeadlineFormat, rec.Deadline); err == nil {
		t.Deadline = d
	}
	if rec.CreatedAt != "" {
		if c, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
			t.CreatedAt = c
		}
	}

	t.DeriveStatus()
	return t
}
