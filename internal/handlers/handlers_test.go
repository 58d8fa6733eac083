package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
	"taskboard/internal/store"
)

func setupTestRouter(t *testing.T) (*chi.Mux, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	r := chi.NewRouter()
	New(s).Routes(r)
	return r, s
}

func postTask(t *testing.T, r http.Handler, rec models.TaskRecord) models.TaskRecord {
	t.Helper()
	body, _ := json.Marshal(rec)
	req := httptest.NewRequest("POST", "/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.TaskRecord
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode created task: %v", err)
	}
	return created
}

func validRecord() models.TaskRecord {
	return models.TaskRecord{
		Title:    "Handler test task",
		Subtasks: []models.Subtask{{Text: "one"}, {Text: "two"}},
		Deadline: "2024-05-01",
		Priority: models.PriorityMedium,
		Status:   models.StatusBacklog,
	}
}

func TestCreateTask_EchoesWithAssignedID(t *testing.T) {
	r, _ := setupTestRouter(t)

	created := postTask(t, r, validRecord())
	if created.ID == "" {
		t.Error("expected an assigned id in the echo")
	}
	if len(created.Subtasks) != 2 {
		t.Errorf("expected subtasks echoed, got %d", len(created.Subtasks))
	}
}

func TestCreateTask_RejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{not json"},
		{name: "missing title", body: `{"priority":"low","status":"backlog"}`},
		{name: "bad priority", body: `{"title":"x","priority":"asap","status":"backlog"}`},
		{name: "bad status", body: `{"title":"x","priority":"low","status":"done"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestRouter(t)
			req := httptest.NewRequest("POST", "/tasks", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestListTasks(t *testing.T) {
	r, _ := setupTestRouter(t)
	postTask(t, r, validRecord())
	postTask(t, r, validRecord())

	req := httptest.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var records []models.TaskRecord
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestGetTask(t *testing.T) {
	r, _ := setupTestRouter(t)
	created := postTask(t, r, validRecord())

	req := httptest.NewRequest("GET", "/tasks/"+created.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var got models.TaskRecord
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title {
		t.Errorf("expected the created task back, got %+v", got)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/tasks/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestUpdateTask(t *testing.T) {
	r, _ := setupTestRouter(t)
	created := postTask(t, r, validRecord())

	created.Title = "Updated"
	created.Subtasks[0].Completed = true
	created.Status = models.StatusProgress
	body, _ := json.Marshal(created)

	req := httptest.NewRequest("PUT", "/tasks/"+created.ID, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var updated models.TaskRecord
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode updated task: %v", err)
	}
	if updated.Title != "Updated" || !updated.Subtasks[0].Completed {
		t.Errorf("expected the stored update echoed, got %+v", updated)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	r, _ := setupTestRouter(t)
	body, _ := json.Marshal(validRecord())

	req := httptest.NewRequest("PUT", "/tasks/missing", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	r, _ := setupTestRouter(t)
	created := postTask(t, r, validRecord())

	req := httptest.NewRequest("DELETE", "/tasks/"+created.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	req = httptest.NewRequest("DELETE", "/tasks/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d on second delete, got %d", http.StatusNotFound, w.Code)
	}
}
