package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/driftware/taskdeck/internal/cache"
	"github.com/driftware/taskdeck/internal/logger"
	"github.com/driftware/taskdeck/internal/session"
)

// Client talks to the remote task service. All state lives server-side;
// the client only holds the base URL, the session and a short-lived
// response cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Store
	cache      *cache.Cache
}

// NewClient creates a client for the service at serverURL. The session
// store supplies the auth token attached to every request and is torn
// down when the server answers 401.
func NewClient(serverURL string, sess session.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/") + "/api",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		session:    sess,
		cache:      cache.New(),
	}
}

// IsLoggedIn returns true if a session token is present
func (c *Client) IsLoggedIn() bool {
	return c.session.Token() != ""
}

// do issues a JSON request against the service. A non-nil out is decoded
// from the response body. Any 401 clears the session before the error is
// returned, regardless of which endpoint triggered it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request failed", logger.F("method", method), logger.F("url", reqURL), logger.F("error", err))
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("HTTP response",
		logger.F("method", method),
		logger.F("url", reqURL),
		logger.F("status", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized {
		// Global policy: a 401 from any endpoint invalidates the session
		logger.Warn("Session rejected by server, clearing token", logger.F("url", reqURL))
		_ = c.session.Clear()
		return &Error{Status: resp.StatusCode, Message: "session expired, run 'taskdeck auth login'"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &Error{Status: resp.StatusCode, Message: serverMessage(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts a readable message from an error body. The
// service answers either {"error": "..."} or a field->messages map.
func serverMessage(body []byte) string {
	var withError struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &withError); err == nil {
		if withError.Error != "" {
			return withError.Error
		}
		if withError.Detail != "" {
			return withError.Detail
		}
	}

	var fieldErrors map[string][]string
	if err := json.Unmarshal(body, &fieldErrors); err == nil {
		for field, msgs := range fieldErrors {
			if len(msgs) > 0 {
				return fmt.Sprintf("%s: %s", field, msgs[0])
			}
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "request failed"
	}
	return msg
}
