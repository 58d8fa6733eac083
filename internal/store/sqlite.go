package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/models"
)

// SQLiteStore implements the Store interface using SQLite. Tasks and their
// subtasks live in separate tables; subtask order is kept in a position
// column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		deadline TEXT DEFAULT '',
		priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high', 'urgent')),
		status TEXT NOT NULL CHECK(status IN ('backlog', 'progress', 'completed')),
		is_collapsed BOOLEAN DEFAULT FALSE,
		created_at TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS subtasks (
		task_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		completed BOOLEAN DEFAULT FALSE,
		PRIMARY KEY (task_id, position),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTask stores a new task record. An empty id is replaced with a fresh
// server-minted one, an empty createdAt with the current time.
func (s *SQLiteStore) CreateTask(ctx context.Context, rec models.TaskRecord) (models.TaskRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, deadline, priority, status, is_collapsed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Title, rec.Description, rec.Deadline, rec.Priority, rec.Status, rec.IsCollapsed, rec.CreatedAt)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to create task: %w", err)
	}

	if err := insertSubtasks(ctx, tx, rec.ID, rec.Subtasks); err != nil {
		return models.TaskRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to commit task: %w", err)
	}
	return rec, nil
}

// GetTask retrieves a task record by id.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (models.TaskRecord, error) {
	var rec models.TaskRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, deadline, priority, status, is_collapsed, created_at
		FROM tasks WHERE id = ?
	`, id).Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.Deadline,
		&rec.Priority,
		&rec.Status,
		&rec.IsCollapsed,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TaskRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return models.TaskRecord{}, fmt.Errorf("failed to get task: %w", err)
	}

	rec.Subtasks, err = s.subtasksFor(ctx, id)
	if err != nil {
		return models.TaskRecord{}, err
	}
	return rec, nil
}

// ListTasks retrieves all task records ordered by creation time.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]models.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, deadline, priority, status, is_collapsed, created_at
		FROM tasks ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	records := []models.TaskRecord{}
	for rows.Next() {
		var rec models.TaskRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.Description,
			&rec.Deadline,
			&rec.Priority,
			&rec.Status,
			&rec.IsCollapsed,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Subtasks, err = s.subtasksFor(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// UpdateTask replaces an existing task record wholesale.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, rec models.TaskRecord) (models.TaskRecord, error) {
	rec.ID = id

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, deadline = ?, priority = ?, status = ?, is_collapsed = ?
		WHERE id = ?
	`, rec.Title, rec.Description, rec.Deadline, rec.Priority, rec.Status, rec.IsCollapsed, id)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.TaskRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, id); err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to clear subtasks: %w", err)
	}
	if err := insertSubtasks(ctx, tx, id, rec.Subtasks); err != nil {
		return models.TaskRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.TaskRecord{}, fmt.Errorf("failed to commit task: %w", err)
	}

	return s.GetTask(ctx, id)
}

// DeleteTask deletes a task and its subtasks.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) subtasksFor(ctx context.Context, taskID string) ([]models.Subtask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, completed FROM subtasks WHERE task_id = ? ORDER BY position ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := []models.Subtask{}
	for rows.Next() {
		var st models.Subtask
		if err := rows.Scan(&st.Text, &st.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan subtask: %w", err)
		}
		subtasks = append(subtasks, st)
	}
	return subtasks, rows.Err()
}

func insertSubtasks(ctx context.Context, tx *sql.Tx, taskID string, subtasks []models.Subtask) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO subtasks (task_id, position, text, completed) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare subtask insert: %w", err)
	}
	defer stmt.Close()

	for i, st := range subtasks {
		if _, err := stmt.ExecContext(ctx, taskID, i+1, st.Text, st.Completed); err != nil {
			return fmt.Errorf("failed to insert subtask: %w", err)
		}
	}
	return nil
}
