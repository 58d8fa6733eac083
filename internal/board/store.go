package board

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

// TaskStore is an in-memory collection of tasks keyed by identifier.
// Sorting is always explicit; insertion order carries no meaning.
//
// The store is safe for concurrent use, though the Presenter additionally
// serializes mutating commands so a rebuild never races a write.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
}

// NewTaskStore creates an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*models.Task)}
}

// Insert constructs a new task with a fresh identifier, all subtasks
// uncompleted and status backlog, and adds it to the store.
func (s *TaskStore) Insert(title, description string, subtaskTexts []string, deadline time.Time, priority models.Priority) *models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.NewTask(uuid.NewString(), title, description, subtaskTexts, deadline, priority)
	task.CreatedAt = time.Now()
	s.tasks[task.ID] = task
	return task
}

// MaterializeFromRemote builds a task from an externally-sourced record and
// adds it to the store. Status is re-derived from the record's subtasks
// regardless of what the record claims.
func (s *TaskStore) MaterializeFromRemote(rec models.TaskRecord) *models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.FromRecord(rec)
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.tasks[task.ID] = task
	return task
}

// Update replaces the mutable fields of an existing task. Subtask completion
// carries forward by exact text match: a subtask whose text survives the
// edit keeps its completed flag, a renamed or new one starts uncompleted.
// Returns false if no task has the given id.
func (s *TaskStore) Update(id, title, description string, subtaskTexts []string, deadline time.Time, priority models.Priority) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return false
	}

	completedByText := make(map[string]bool, len(task.Subtasks))
	for _, st := range task.Subtasks {
		if st.Completed {
			completedByText[st.Text] = true
		}
	}

	subtasks := make([]models.Subtask, len(subtaskTexts))
	for i, text := range subtaskTexts {
		subtasks[i] = models.Subtask{Text: text, Completed: completedByText[text]}
	}

	task.Title = title
	task.Description = description
	task.Subtasks = subtasks
	task.Deadline = deadline
	task.Priority = priority
	task.DeriveStatus()
	return true
}

// Remove deletes the task with the given id, reporting whether it existed.
func (s *TaskStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// Get returns the task with the given id, or nil if absent.
func (s *TaskStore) Get(id string) *models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks[id]
}

// List returns all tasks in unspecified order.
func (s *TaskStore) List() []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	return tasks
}

// ListByStatus returns the tasks currently in the given board column.
func (s *TaskStore) ListByStatus(status models.Status) []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []*models.Task
	for _, t := range s.tasks {
		if t.Status == status {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// ListSorted returns the tasks in the given column ordered by priority rank
// descending, then deadline ascending.
func (s *TaskStore) ListSorted(status models.Status) []*models.Task {
	tasks := s.ListByStatus(status)
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority.Rank() != tasks[j].Priority.Rank() {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		}
		return tasks[i].Deadline.Before(tasks[j].Deadline)
	})
	return tasks
}

// ToggleSubtask flips a subtask's completion flag on the task with the given
// id. Returns false if the task is absent or the index is out of range.
func (s *TaskStore) ToggleSubtask(id string, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	return task.ToggleSubtask(index)
}

// ToggleCollapse flips the collapsed flag on the task with the given id.
func (s *TaskStore) ToggleCollapse(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	task.ToggleCollapse()
	return true
}

// SetAllCollapsed sets the collapsed flag on every task.
func (s *TaskStore) SetAllCollapsed(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		t.Collapsed = collapsed
	}
}

// AllCollapsed reports whether the store is non-empty and every task is
// collapsed.
func (s *TaskStore) AllCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.tasks) == 0 {
		return false
	}
	for _, t := range s.tasks {
		if !t.Collapsed {
			return false
		}
	}
	return true
}

// Len returns the number of tasks in the store.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
