package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/driftware/taskdeck/internal/logger"
)

// Login authenticates with username and password and stores the
// returned token in the session
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var result struct {
		Key string `json:"key"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, body, &result); err != nil {
		return err
	}
	if result.Key == "" {
		return fmt.Errorf("login response did not contain a token")
	}

	logger.Info("Logged in", logger.F("username", username))
	return c.session.SetToken(result.Key, username)
}

// Register creates a new account. The service wants the password twice.
func (c *Client) Register(ctx context.Context, username, email, password1, password2 string) error {
	body := map[string]string{
		"username":  username,
		"email":     email,
		"password1": password1,
		"password2": password2,
	}
	return c.do(ctx, http.MethodPost, "/auth/registration/", nil, body, nil)
}

// Logout invalidates the token server-side. The local session is
// cleared whether or not the remote call succeeds.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, nil)
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	c.cache.Clear()
	return err
}
