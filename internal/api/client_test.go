package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/taskdeck/internal/model"
	"github.com/driftware/taskdeck/internal/session"
)

// fakeService is an in-process stand-in for the task server
type fakeService struct {
	echo   *echo.Echo
	server *httptest.Server

	listBody      interface{}
	reportCalls   atomic.Int64
	lastAuth      string
	lastListQuery map[string]string
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{echo: echo.New()}
	e := f.echo

	e.GET("/api/todos/", func(c echo.Context) error {
		f.lastAuth = c.Request().Header.Get("Authorization")
		f.lastListQuery = map[string]string{}
		for k, v := range c.QueryParams() {
			f.lastListQuery[k] = v[0]
		}
		return c.JSON(http.StatusOK, f.listBody)
	})

	e.PATCH("/api/todos/:id/toggle-status/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id": 7, "title": "Toggled", "completed": true, "priority": "Medium",
		})
	})

	e.GET("/api/reports/progress/", func(c echo.Context) error {
		f.reportCalls.Add(1)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"total_tasks": 10, "completed_tasks": 4, "incomplete_tasks": 6,
			"completion_rate": 40.0,
		})
	})

	e.POST("/api/todos/", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return err
		}
		payload["id"] = 11
		return c.JSON(http.StatusCreated, payload)
	})

	e.GET("/api/todos/share-link/:link/", func(c echo.Context) error {
		if c.Param("link") != "known" {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Share link not found"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"task_id": 7, "task_title": "Shared task", "permission": "view", "shared_by": "ana",
		})
	})

	e.POST("/api/auth/login/", func(c echo.Context) error {
		var creds map[string]string
		if err := c.Bind(&creds); err != nil {
			return err
		}
		if creds["password"] != "secret" {
			return c.JSON(http.StatusBadRequest, map[string][]string{
				"non_field_errors": {"Unable to log in with provided credentials."},
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"key": "tok-123"})
	})

	e.GET("/api/expired/", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
	})

	f.server = httptest.NewServer(e)
	t.Cleanup(f.server.Close)
	return f
}

func newTestClient(t *testing.T) (*Client, *fakeService, *session.MemStore) {
	t.Helper()
	f := newFakeService(t)
	sess := &session.MemStore{}
	require.NoError(t, sess.SetToken("tok-123", "ana"))
	return NewClient(f.server.URL, sess), f, sess
}

func TestListTasksBareArray(t *testing.T) {
	client, f, _ := newTestClient(t)
	f.listBody = []map[string]interface{}{
		{"id": 1, "title": "One", "priority": "High"},
		{"id": 2, "title": "Two", "priority": "Low"},
	}

	tasks, err := client.ListTasks(context.Background(), TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "One", tasks[0].Title)
	assert.Equal(t, "Token tok-123", f.lastAuth)
}

func TestListTasksPaginatedWrapper(t *testing.T) {
	client, f, _ := newTestClient(t)
	f.listBody = map[string]interface{}{
		"count": 1,
		"results": []map[string]interface{}{
			{"id": 3, "title": "Wrapped", "priority": "Urgent"},
		},
	}

	tasks, err := client.ListTasks(context.Background(), TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(3), tasks[0].ID)
}

func TestListTasksFilterQuery(t *testing.T) {
	client, f, _ := newTestClient(t)
	f.listBody = []map[string]interface{}{}

	_, err := client.ListTasks(context.Background(), TaskFilter{
		Status: "completed", Priority: "High", Category: "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "true", f.lastListQuery["completed"])
	assert.Equal(t, "High", f.lastListQuery["priority"])
	assert.Equal(t, "3", f.lastListQuery["category"])

	_, err = client.ListTasks(context.Background(), TaskFilter{Status: "overdue", Priority: "all"})
	require.NoError(t, err)
	assert.Equal(t, "overdue", f.lastListQuery["status"])
	assert.NotContains(t, f.lastListQuery, "priority")
}

func TestToggleTask(t *testing.T) {
	client, _, _ := newTestClient(t)

	task, err := client.ToggleTask(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, int64(7), task.ID)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	client, _, sess := newTestClient(t)

	err := client.do(context.Background(), http.MethodGet, "/expired/", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, sess.Token(), "a 401 must tear down the stored session")
	assert.False(t, client.IsLoggedIn())
}

func TestLoginStoresToken(t *testing.T) {
	f := newFakeService(t)
	sess := &session.MemStore{}
	client := NewClient(f.server.URL, sess)

	err := client.Login(context.Background(), "ana", "wrong")
	require.Error(t, err)
	assert.Empty(t, sess.Token())

	require.NoError(t, client.Login(context.Background(), "ana", "secret"))
	assert.Equal(t, "tok-123", sess.Token())
	assert.Equal(t, "ana", sess.Username())
}

func TestResolveShareLinkNotFound(t *testing.T) {
	client, _, _ := newTestClient(t)

	_, err := client.ResolveShareLink(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrShareLinkNotFound)

	shared, err := client.ResolveShareLink(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "Shared task", shared.TaskTitle)
}

func TestProgressReportCachedAndInvalidated(t *testing.T) {
	client, f, _ := newTestClient(t)
	ctx := context.Background()

	report, err := client.ProgressReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, report.TotalTasks)

	// second call is served from cache
	_, err = client.ProgressReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.reportCalls.Load())

	// a mutation evicts the report cache
	_, err = client.CreateTask(ctx, model.TaskPayload{Title: "New"})
	require.NoError(t, err)

	_, err = client.ProgressReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.reportCalls.Load())
}

func TestServerMessageShapes(t *testing.T) {
	assert.Equal(t, "boom", serverMessage([]byte(`{"error":"boom"}`)))
	assert.Equal(t, "nope", serverMessage([]byte(`{"detail":"nope"}`)))
	assert.Equal(t, "title: This field is required.",
		serverMessage([]byte(`{"title":["This field is required."]}`)))
	assert.Equal(t, "request failed", serverMessage(nil))
}
