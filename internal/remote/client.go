package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taskboard/internal/models"
)

// Client implements Service over HTTP against a tasks resource rooted at
// baseURL (e.g. "http://localhost:8080/tasks"). It issues plain JSON
// requests with no retries; cancellation and deadlines come from the
// caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the tasks resource at baseURL. If
// httpClient is nil, http.DefaultClient is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ListTasks fetches the full task collection.
func (c *Client) ListTasks(ctx context.Context) ([]models.TaskRecord, error) {
	var records []models.TaskRecord
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetTask fetches a single task record.
func (c *Client) GetTask(ctx context.Context, id string) (models.TaskRecord, error) {
	var rec models.TaskRecord
	if err := c.do(ctx, http.MethodGet, c.taskURL(id), nil, &rec); err != nil {
		return models.TaskRecord{}, err
	}
	return rec, nil
}

// CreateTask creates a task and returns the server's echo, including the
// assigned identifier.
func (c *Client) CreateTask(ctx context.Context, rec models.TaskRecord) (models.TaskRecord, error) {
	var created models.TaskRecord
	if err := c.do(ctx, http.MethodPost, c.baseURL, &rec, &created); err != nil {
		return models.TaskRecord{}, err
	}
	return created, nil
}

// UpdateTask replaces a task record and returns the server's echo.
func (c *Client) UpdateTask(ctx context.Context, id string, rec models.TaskRecord) (models.TaskRecord, error) {
	var updated models.TaskRecord
	if err := c.do(ctx, http.MethodPut, c.taskURL(id), &rec, &updated); err != nil {
		return models.TaskRecord{}, err
	}
	return updated, nil
}

// DeleteTask removes a task from the remote store.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil)
}

func (c *Client) taskURL(id string) string {
	return c.baseURL + "/" + id
}

// do performs one request/response cycle. A transport failure becomes a
// *NetworkError, a non-2xx status a *HTTPError; out, when non-nil, receives
// the decoded JSON body.
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
