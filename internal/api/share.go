package api

import (
	"context"
	"fmt"
	"net/http"
)

// TaskShare is a grant of access to one task for one recipient
type TaskShare struct {
	ID               int64  `json:"id"`
	Task             int64  `json:"task"`
	TaskTitle        string `json:"task_title"`
	SharedByUsername string `json:"shared_by_username"`
	SharedToUsername string `json:"shared_to_username"`
	Permission       string `json:"permission"` // view | edit
	ShareLink        string `json:"share_link"`
	Accepted         bool   `json:"accepted"`
	Warning          string `json:"warning,omitempty"` // set when the invite mail could not be sent
}

// SharedTask is what a public share link resolves to
type SharedTask struct {
	TaskID          int64  `json:"task_id"`
	TaskTitle       string `json:"task_title"`
	TaskDescription string `json:"task_description"`
	Permission      string `json:"permission"`
	SharedBy        string `json:"shared_by"`
	Accepted        bool   `json:"accepted"`
}

// ShareTask shares a task with the user holding the given email address
func (c *Client) ShareTask(ctx context.Context, taskID int64, email, permission string) (TaskShare, error) {
	if permission == "" {
		permission = "view"
	}
	body := map[string]interface{}{
		"todo_id":         taskID,
		"shared_to_email": email,
		"permission":      permission,
	}

	var share TaskShare
	if err := c.do(ctx, http.MethodPost, "/todos/share/", nil, body, &share); err != nil {
		return TaskShare{}, err
	}
	return share, nil
}

// SharedWithMe lists tasks other users shared with the current user
func (c *Client) SharedWithMe(ctx context.Context) ([]TaskShare, error) {
	var shares []TaskShare
	if err := c.do(ctx, http.MethodGet, "/todos/shared-with-me/", nil, nil, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// SharedByMe lists the shares the current user created
func (c *Client) SharedByMe(ctx context.Context) ([]TaskShare, error) {
	var shares []TaskShare
	if err := c.do(ctx, http.MethodGet, "/todos/shared-by-me/", nil, nil, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// ResolveShareLink resolves a public share link. The endpoint needs no
// authentication. An unknown link yields ErrShareLinkNotFound so callers
// can distinguish it from a network failure.
func (c *Client) ResolveShareLink(ctx context.Context, link string) (SharedTask, error) {
	var shared SharedTask
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/todos/share-link/%s/", link), nil, nil, &shared)
	if err != nil {
		if IsNotFound(err) {
			return SharedTask{}, fmt.Errorf("%w: %s", ErrShareLinkNotFound, link)
		}
		return SharedTask{}, err
	}
	return shared, nil
}

// AcceptShare marks a share link as accepted by the current user
func (c *Client) AcceptShare(ctx context.Context, link string) error {
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/todos/share-link/%s/accept/", link), nil, nil, nil)
	if err != nil && IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrShareLinkNotFound, link)
	}
	return err
}
