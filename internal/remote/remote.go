package remote

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/models"
)

// Service is the remote tasks resource the board synchronizes with. Mutating
// calls return the server's echo of the affected record; implementations
// report failures with the error types below.
type Service interface {
	ListTasks(ctx context.Context) ([]models.TaskRecord, error)
	GetTask(ctx context.Context, id string) (models.TaskRecord, error)
	CreateTask(ctx context.Context, rec models.TaskRecord) (models.TaskRecord, error)
	UpdateTask(ctx context.Context, id string, rec models.TaskRecord) (models.TaskRecord, error)
	DeleteTask(ctx context.Context, id string) error
}

// ErrNotFound marks a reference to an identifier the remote store does not
// hold. HTTPError wraps it for 404 responses so callers can use errors.Is.
var ErrNotFound = errors.New("task not found")

// NetworkError reports a transport-level failure: the remote store could not
// be reached at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("remote unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response from the remote store.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("remote returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("remote returned HTTP %d", e.Status)
}

// Unwrap lets a 404 satisfy errors.Is(err, ErrNotFound).
func (e *HTTPError) Unwrap() error {
	if e.Status == 404 {
		return ErrNotFound
	}
	return nil
}
