package store

import (
	"context"
	"errors"

	"taskboard/internal/models"
)

// ErrNotFound is returned when a task id is absent from the store.
var ErrNotFound = errors.New("task not found")

// Store defines the persistence operations behind the tasks resource.
type Store interface {
	CreateTask(ctx context.Context, rec models.TaskRecord) (models.TaskRecord, error)
	GetTask(ctx context.Context, id string) (models.TaskRecord, error)
	ListTasks(ctx context.Context) ([]models.TaskRecord, error)
	UpdateTask(ctx context.Context, id string, rec models.TaskRecord) (models.TaskRecord, error)
	DeleteTask(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}
