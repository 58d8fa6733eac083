package models

import (
	"errors"
	"testing"
	"time"
)

func newTestTask(subtaskTexts []string) *Task {
	deadline, _ := time.Parse(DeadlineFormat, "2024-01-01")
	return NewTask("t1", "Test task", "", subtaskTexts, deadline, PriorityMedium)
}

func TestDeriveStatus_AllCompletionSubsets(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		want      Status
	}{
		{name: "no subtasks completed is backlog", completed: nil, want: StatusBacklog},
		{name: "one of three completed is progress", completed: []int{0}, want: StatusProgress},
		{name: "two of three completed is progress", completed: []int{0, 2}, want: StatusProgress},
		{name: "all three completed is completed", completed: []int{0, 1, 2}, want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTestTask([]string{"a", "b", "c"})
			for _, i := range tt.completed {
				task.Subtasks[i].Completed = true
			}
			task.DeriveStatus()
			if task.Status != tt.want {
				t.Errorf("expected status %q, got %q", tt.want, task.Status)
			}
		})
	}
}

func TestDeriveStatus_EmptySubtaskListIsBacklog(t *testing.T) {
	task := newTestTask(nil)
	task.DeriveStatus()
	if task.Status != StatusBacklog {
		t.Errorf("expected status %q, got %q", StatusBacklog, task.Status)
	}
}

func TestProgress(t *testing.T) {
	task := newTestTask([]string{"a", "b", "c", "d"})
	task.Subtasks[0].Completed = true
	task.Subtasks[1].Completed = true

	p := task.Progress()
	if p.Completed != 2 {
		t.Errorf("expected 2 completed, got %d", p.Completed)
	}
	if p.Total != 4 {
		t.Errorf("expected total 4, got %d", p.Total)
	}
	if p.Percentage != 50 {
		t.Errorf("expected percentage 50, got %v", p.Percentage)
	}
}

func TestProgress_EmptySubtaskList(t *testing.T) {
	task := newTestTask(nil)
	p := task.Progress()
	if p.Percentage != 0 {
		t.Errorf("expected percentage 0 for empty subtask list, got %v", p.Percentage)
	}
}

func TestToggleSubtask(t *testing.T) {
	task := newTestTask([]string{"a", "b"})

	if !task.ToggleSubtask(0) {
		t.Fatal("expected toggle of valid index to succeed")
	}
	if !task.Subtasks[0].Completed {
		t.Error("expected subtask 0 to be completed")
	}
	if task.Status != StatusProgress {
		t.Errorf("expected status %q after first toggle, got %q", StatusProgress, task.Status)
	}

	if !task.ToggleSubtask(0) {
		t.Fatal("expected second toggle to succeed")
	}
	if task.Subtasks[0].Completed {
		t.Error("expected subtask 0 to be uncompleted again")
	}
	if task.Status != StatusBacklog {
		t.Errorf("expected status %q after toggling back, got %q", StatusBacklog, task.Status)
	}
}

func TestToggleSubtask_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{name: "negative index", index: -1},
		{name: "index equal to length", index: 2},
		{name: "index past length", index: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTestTask([]string{"a", "b"})
			task.Subtasks[0].Completed = true
			task.DeriveStatus()
			before := task.Status

			if task.ToggleSubtask(tt.index) {
				t.Error("expected out-of-range toggle to fail")
			}
			if task.Status != before {
				t.Errorf("expected status unchanged (%q), got %q", before, task.Status)
			}
			if !task.Subtasks[0].Completed || task.Subtasks[1].Completed {
				t.Error("expected subtask state unchanged")
			}
		})
	}
}

func TestToggleCollapse(t *testing.T) {
	task := newTestTask([]string{"a"})
	task.ToggleCollapse()
	if !task.Collapsed {
		t.Error("expected task to be collapsed")
	}
	task.ToggleCollapse()
	if task.Collapsed {
		t.Error("expected task to be expanded again")
	}
}

func TestPriorityRank_Ordering(t *testing.T) {
	order := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("expected %s to rank above %s", order[i], order[i-1])
		}
	}
}

func TestTaskInputValidation(t *testing.T) {
	deadline, _ := time.Parse(DeadlineFormat, "2024-01-01")
	valid := TaskInput{
		Title:    "Task",
		Subtasks: []string{"one"},
		Deadline: deadline,
		Priority: PriorityLow,
	}

	tests := []struct {
		name    string
		mutate  func(*TaskInput)
		wantErr bool
	}{
		{name: "valid input passes", mutate: func(in *TaskInput) {}, wantErr: false},
		{name: "empty title fails", mutate: func(in *TaskInput) { in.Title = "" }, wantErr: true},
		{name: "whitespace title fails", mutate: func(in *TaskInput) { in.Title = "   " }, wantErr: true},
		{name: "empty subtask list fails", mutate: func(in *TaskInput) { in.Subtasks = nil }, wantErr: true},
		{name: "blank subtask text fails", mutate: func(in *TaskInput) { in.Subtasks = []string{"ok", " "} }, wantErr: true},
		{name: "missing deadline fails", mutate: func(in *TaskInput) { in.Deadline = time.Time{} }, wantErr: true},
		{name: "unknown priority fails", mutate: func(in *TaskInput) { in.Priority = "critical" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Subtasks = append([]string(nil), valid.Subtasks...)
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
