package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// NotificationSetting configures the email reminder for one task
type NotificationSetting struct {
	ID              int64  `json:"id"`
	Todo            int64  `json:"todo"`
	ReminderMinutes int    `json:"reminder_minutes"`
	Channels        string `json:"channels"`
	Enabled         bool   `json:"enabled"`
}

// NotificationForTask returns the setting for a task, or nil if none
// exists yet
func (c *Client) NotificationForTask(ctx context.Context, taskID int64) (*NotificationSetting, error) {
	q := url.Values{}
	q.Set("todo", strconv.FormatInt(taskID, 10))

	var settings []NotificationSetting
	if err := c.do(ctx, http.MethodGet, "/notifications/", q, nil, &settings); err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, nil
	}
	return &settings[0], nil
}

// SaveNotification upserts the reminder setting for a task: create if
// absent, else patch. Disabling an absent setting is a no-op.
func (c *Client) SaveNotification(ctx context.Context, taskID int64, enabled bool, minutes int) (*NotificationSetting, error) {
	current, err := c.NotificationForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !enabled {
		if current == nil {
			return nil, nil
		}
		var saved NotificationSetting
		body := map[string]interface{}{"enabled": false}
		path := fmt.Sprintf("/notifications/%d/", current.ID)
		if err := c.do(ctx, http.MethodPatch, path, nil, body, &saved); err != nil {
			return nil, err
		}
		return &saved, nil
	}

	body := map[string]interface{}{
		"todo":             taskID,
		"reminder_minutes": minutes,
		"channels":         "email",
		"enabled":          true,
	}

	var saved NotificationSetting
	if current == nil {
		if err := c.do(ctx, http.MethodPost, "/notifications/", nil, body, &saved); err != nil {
			return nil, err
		}
	} else {
		path := fmt.Sprintf("/notifications/%d/", current.ID)
		if err := c.do(ctx, http.MethodPatch, path, nil, body, &saved); err != nil {
			return nil, err
		}
	}
	return &saved, nil
}
