package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskInput carries the user-supplied fields for creating or editing a task.
type TaskInput struct {
	Title       string
	Description string
	Subtasks    []string
	Deadline    time.Time
	Priority    Priority
}

// ValidationError reports input rejected before any remote call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the input against the creation/edit rules: non-empty
// title, at least one non-empty subtask, a deadline, and a known priority.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(in.Subtasks) == 0 {
		return &ValidationError{Field: "subtasks", Reason: "at least one subtask is required"}
	}
	for _, text := range in.Subtasks {
		if strings.TrimSpace(text) == "" {
			return &ValidationError{Field: "subtasks", Reason: "subtask text must not be empty"}
		}
	}
	if in.Deadline.IsZero() {
		return &ValidationError{Field: "deadline", Reason: "deadline is required"}
	}
	if !in.Priority.IsValid() {
		return &ValidationError{Field: "priority", Reason: "priority must be 'low', 'medium', 'high', or 'urgent'"}
	}
	return nil
}
