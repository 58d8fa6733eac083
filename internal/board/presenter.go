package board

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/remote"
)

// Degraded reports a mutation that was applied to local state only because
// the remote write failed. Callers should surface it as a warning, not a
// failure: the board stays usable and drift heals on the next successful
// round-trip.
type Degraded struct {
	Op  string
	Err error
}

func (e *Degraded) Error() string {
	return fmt.Sprintf("%s applied locally, remote write failed: %v", e.Op, e.Err)
}

func (e *Degraded) Unwrap() error { return e.Err }

// Presenter is the synchronization orchestrator: the single authority on
// whether an operation talks to the remote store and how to degrade when it
// cannot. It owns the current TaskStore and replaces it wholesale after
// every successful remote round-trip, so the local view never silently
// diverges from the remote store after a confirmed write.
type Presenter struct {
	svc remote.Service

	// cmdMu serializes mutating commands so a second command cannot race
	// a store rebuild already in flight.
	cmdMu sync.Mutex

	mu    sync.RWMutex
	store *TaskStore
}

// NewPresenter creates a presenter with an empty store. Call Reload to
// populate it from the remote store.
func NewPresenter(svc remote.Service) *Presenter {
	return &Presenter{svc: svc, store: NewTaskStore()}
}

// Store returns the current task store. The returned store is replaced,
// not mutated, on reconciliation; holding it across commands is a snapshot.
func (p *Presenter) Store() *TaskStore {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store
}

func (p *Presenter) swapStore(s *TaskStore) {
	p.mu.Lock()
	p.store = s
	p.mu.Unlock()
}

// rebuild materializes every record into a fresh store and swaps it in,
// discarding the previous one entirely.
func (p *Presenter) rebuild(records []models.TaskRecord) {
	store := NewTaskStore()
	for _, rec := range records {
		store.MaterializeFromRemote(rec)
	}
	p.swapStore(store)
}

// reconcile refetches the full collection and rebuilds the store from it.
func (p *Presenter) reconcile(ctx context.Context) error {
	records, err := p.svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	p.rebuild(records)
	return nil
}

// Reload fetches the full task collection and rebuilds the store. If the
// fetch fails or returns no collection at all, the store is rebuilt from
// the built-in fallback dataset instead, so the board is never left empty
// by a dead remote. The returned *Degraded signals the fallback was used.
func (p *Presenter) Reload(ctx context.Context) error {
	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()

	records, err := p.svc.ListTasks(ctx)
	if err != nil || records == nil {
		if err == nil {
			err = fmt.Errorf("remote returned no task collection")
		}
		log.Printf("task reload failed, using fallback dataset: %v", err)
		p.rebuild(FallbackRecords())
		return &Degraded{Op: "reload", Err: err}
	}
	p.rebuild(records)
	return nil
}

// CreateTask validates the input and creates the task remotely, then
// reconciles. There is no local fallback for creation: a locally-minted
// identifier could collide with a later-synced remote one, so a failed
// remote create surfaces as an error.
func (p *Presenter) CreateTask(ctx context.Context, in models.TaskInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()

	task := models.NewTask("", in.Title, in.Description, in.Subtasks, in.Deadline, in.Priority)
	task.CreatedAt = time.Now()

	created, err := p.svc.CreateTask(ctx, task.Record())
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := p.reconcile(ctx); err != nil {
		// The create itself succeeded; keep its echo so the new task is
		// visible even though the refetch failed.
		p.Store().MaterializeFromRemote(created)
		log.Printf("reconcile after create failed: %v", err)
		return &Degraded{Op: "create", Err: err}
	}
	return nil
}

// UpdateTask validates the input and replaces the task remotely, then
// reconciles. On remote failure the edit is applied to the local store and
// a *Degraded warning is returned. Subtask completion carries forward by
// text match in both paths.
func (p *Presenter) UpdateTask(ctx context.Context, id string, in models.TaskInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()

	rec := p.editedRecord(id, in)

	if _, err := p.svc.UpdateTask(ctx, id, rec); err != nil {
		p.Store().Update(id, in.Title, in.Description, in.Subtasks, in.Deadline, in.Priority)
		log.Printf("remote update of task %s failed, applied locally: %v", id, err)
		return &Degraded{Op: "update", Err: err}
	}

	if err := p.reconcile(ctx); err != nil {
		p.Store().Update(id, in.Title, in.Description, in.Subtasks, in.Deadline, in.Priority)
		log.Printf("reconcile after update failed: %v", err)
		return &Degraded{Op: "update", Err: err}
	}
	return nil
}

// editedRecord builds the full replacement record for an edit, carrying
// subtask completion forward from the current local task by text match.
func (p *Presenter) editedRecord(id string, in models.TaskInput) models.TaskRecord {
	completedByText := make(map[string]bool)
	createdAt := time.Time{}
	collapsed := false
	if current := p.Store().Get(id); current != nil {
		for _, st := range current.Subtasks {
			if st.Completed {
				completedByText[st.Text] = true
			}
		}
		createdAt = current.CreatedAt
		collapsed = current.Collapsed
	}

	task := models.NewTask(id, in.Title, in.Description, in.Subtasks, in.Deadline, in.Priority)
	for i := range task.Subtasks {
		task.Subtasks[i].Completed = completedByText[task.Subtasks[i].Text]
	}
	task.CreatedAt = createdAt
	task.Collapsed = collapsed
	task.DeriveStatus()
	return task.Record()
}

// DeleteTask removes the task remotely, then reconciles. On remote failure
// the task is removed from the local store and a *Degraded warning is
// returned.
func (p *Presenter) DeleteTask(ctx context.Context, id string) error {
	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()

	if err := p.svc.DeleteTask(ctx, id); err != nil {
		p.Store().Remove(id)
		log.Printf("remote delete of task %s failed, removed locally: %v", id, err)
		return &Degraded{Op: "delete", Err: err}
	}

	if err := p.reconcile(ctx); err != nil {
		p.Store().Remove(id)
		log.Printf("reconcile after delete failed: %v", err)
		return &Degraded{Op: "delete", Err: err}
	}
	return nil
}

// ToggleSubtask flips one subtask remotely via read-modify-write: fetch the
// current record, flip the indexed subtask, re-derive status, and write the
// whole record back. On remote failure the toggle is applied to the local
// store and a *Degraded warning is returned. An out-of-range index is a
// no-op in both paths.
func (p *Presenter) ToggleSubtask(ctx context.Context, id string, index int) error {
	p.cmdMu.Lock()
	defer p.cmdMu.Unlock()

	rec, err := p.svc.GetTask(ctx, id)
	if err != nil {
		return p.degradeToggle(id, index, err)
	}

	task := models.FromRecord(rec)
	if !task.ToggleSubtask(index) {
		return nil
	}

	if _, err := p.svc.UpdateTask(ctx, id, task.Record()); err != nil {
		return p.degradeToggle(id, index, err)
	}

	if err := p.reconcile(ctx); err != nil {
		return p.degradeToggle(id, index, err)
	}
	return nil
}

func (p *Presenter) degradeToggle(id string, index int, cause error) error {
	p.Store().ToggleSubtask(id, index)
	log.Printf("remote toggle of task %s subtask %d failed, applied locally: %v", id, index, cause)
	return &Degraded{Op: "toggle-subtask", Err: cause}
}

// ToggleCollapse flips the collapsed flag on one task. Collapse state is
// presentation state and never contacts the remote store.
func (p *Presenter) ToggleCollapse(id string) bool {
	return p.Store().ToggleCollapse(id)
}

// ToggleAllCollapsed collapses every task, unless every task is already
// collapsed, in which case it expands them all.
func (p *Presenter) ToggleAllCollapsed() {
	store := p.Store()
	store.SetAllCollapsed(!store.AllCollapsed())
}

// Tasks returns all tasks without contacting the remote store.
func (p *Presenter) Tasks() []*models.Task {
	return p.Store().List()
}

// TasksByStatus returns the tasks in one board column.
func (p *Presenter) TasksByStatus(status models.Status) []*models.Task {
	return p.Store().ListByStatus(status)
}

// SortedTasks returns one board column ordered by priority then deadline.
func (p *Presenter) SortedTasks(status models.Status) []*models.Task {
	return p.Store().ListSorted(status)
}
