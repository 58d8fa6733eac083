package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
	"taskboard/internal/store"
)

// ListTasks returns the full task collection.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListTasks(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetTask returns a single task record.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// CreateTask stores a new task record and echoes it back with its assigned
// identifier.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var rec models.TaskRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validateRecord(rec); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.CreateTask(r.Context(), rec)
	if err != nil {
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateTask replaces an existing task record and echoes the stored result.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var rec models.TaskRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validateRecord(rec); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.UpdateTask(r.Context(), id, rec)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// validateRecord checks the fields the schema cannot default.
func validateRecord(rec models.TaskRecord) error {
	if strings.TrimSpace(rec.Title) == "" {
		return errors.New("title is required")
	}
	if !rec.Priority.IsValid() {
		return errors.New("priority must be 'low', 'medium', 'high', or 'urgent'")
	}
	if !rec.Status.IsValid() {
		return errors.New("status must be 'backlog', 'progress', or 'completed'")
	}
	return nil
}
