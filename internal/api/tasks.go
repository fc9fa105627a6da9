package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/driftware/taskdeck/internal/model"
)

// TaskFilter holds the list parameters the server resolves. Tag and
// text filtering happen client-side on the returned snapshot.
type TaskFilter struct {
	Status   string // all | active | completed | overdue | today | shared
	Priority string // all | Low | Medium | High | Urgent
	Category string // "all" or a category id
}

func (f TaskFilter) query() url.Values {
	q := url.Values{}
	switch f.Status {
	case "", "all":
	case "completed":
		q.Set("completed", "true")
	case "active":
		q.Set("completed", "false")
	default:
		q.Set("status", f.Status)
	}
	if f.Priority != "" && f.Priority != "all" {
		q.Set("priority", f.Priority)
	}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	return q
}

// ListTasks fetches the task collection. The server sometimes answers a
// bare array and sometimes a paginated {"results": [...]} wrapper; both
// shapes are normalized here so nothing past this boundary branches on
// them.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/todos/", filter.query(), nil, &raw); err != nil {
		return nil, err
	}
	return unwrapTasks(raw)
}

func unwrapTasks(raw json.RawMessage) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}

	var page struct {
		Results []model.Task `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("unexpected task list shape: %w", err)
	}
	return page.Results, nil
}

// CreateTask creates a task; the server assigns id and created_at
func (c *Client) CreateTask(ctx context.Context, payload model.TaskPayload) (model.Task, error) {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/todos/", nil, payload, &created); err != nil {
		return model.Task{}, err
	}
	c.cache.Clear("reports")
	return created, nil
}

// UpdateTask replaces the task with the given payload
func (c *Client) UpdateTask(ctx context.Context, id int64, payload model.TaskPayload) (model.Task, error) {
	var updated model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/todos/%d/", id), nil, payload, &updated); err != nil {
		return model.Task{}, err
	}
	c.cache.Clear("reports")
	return updated, nil
}

// DeleteTask removes the task
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d/", id), nil, nil, nil); err != nil {
		return err
	}
	c.cache.Clear("reports")
	return nil
}

// ToggleTask flips the completed flag server-side and returns the
// updated task
func (c *Client) ToggleTask(ctx context.Context, id int64) (model.Task, error) {
	var updated model.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/todos/%d/toggle-status/", id), nil, nil, &updated); err != nil {
		return model.Task{}, err
	}
	c.cache.Clear("reports")
	return updated, nil
}
