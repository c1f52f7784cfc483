package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakkersiddiqq/taskflow/internal/api"
	"github.com/abubakkersiddiqq/taskflow/internal/auth"
	"github.com/abubakkersiddiqq/taskflow/internal/engine"
	"github.com/abubakkersiddiqq/taskflow/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer bundles the handler with helpers for authenticated requests.
type testServer struct {
	t       *testing.T
	handler http.Handler
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := testutil.NewTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(s, logger)
	authSvc := auth.NewService(s, "test-secret", time.Hour)
	server := api.NewServer(eng, authSvc)
	return &testServer{t: t, handler: server.Handler(), auth: authSvc}
}

// register creates an account through the API and returns its bearer token.
func (ts *testServer) register(email string) string {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TaskFlow API running", decode(t, w)["message"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/projects"},
		{http.MethodPost, "/api/projects"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/auth/me"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := ts.do(p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = ts.do(p.method, p.path, "garbage-token", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("alice@example.com")

	t.Run("me returns the current user without the password hash", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "alice@example.com", body["email"])
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("duplicate email is a 400", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/auth/register", "", gin.H{
			"name": "Dup", "email": "alice@example.com", "password": "hunter22",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login succeeds with the right password", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "hunter22",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login fails with 401 otherwise", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile update", func(t *testing.T) {
		w := ts.do(http.MethodPut, "/api/auth/profile", token, gin.H{"name": "Alice B"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Alice B", decode(t, w)["name"])
	})
}

func TestProjectEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("alice@example.com")

	w := ts.do(http.MethodPost, "/api/projects", token, gin.H{"name": "Work"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	projectID := created["id"].(string)
	assert.Equal(t, "Work", created["name"])

	t.Run("list returns the project", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/projects", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)
	})

	t.Run("duplicate name is a 400", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/projects", token, gin.H{"name": "Work"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Project already exists", decode(t, w)["message"])
	})

	t.Run("empty name is a 400 with field errors", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/projects", token, gin.H{"name": "  "})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		require.Contains(t, body, "errors")
	})

	t.Run("rename", func(t *testing.T) {
		w := ts.do(http.MethodPut, "/api/projects/"+projectID, token, gin.H{"name": "Office"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Office", decode(t, w)["name"])
	})

	t.Run("update of unknown id is a 404", func(t *testing.T) {
		w := ts.do(http.MethodPut, "/api/projects/nope", token, gin.H{"color": "#000"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete then re-delete", func(t *testing.T) {
		w := ts.do(http.MethodDelete, "/api/projects/"+projectID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Project deleted", body["message"])
		assert.Equal(t, projectID, body["id"])

		w = ts.do(http.MethodDelete, "/api/projects/"+projectID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("alice@example.com")

	w := ts.do(http.MethodPost, "/api/tasks", token, gin.H{
		"title": "write report", "priority": "high", "project": "Work",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	taskID := created["id"].(string)
	assert.Equal(t, "todo", created["status"])
	assert.Equal(t, "high", created["priority"])

	t.Run("missing title is a 400", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/tasks", token, gin.H{"description": "no title"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		w := ts.do(http.MethodPut, "/api/tasks/"+taskID, token, gin.H{"status": "done"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "done", body["status"])
		assert.Equal(t, "write report", body["title"])
		assert.Equal(t, "high", body["priority"])
	})

	t.Run("filters", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/tasks", token, gin.H{"title": "other", "project": "Home"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = ts.do(http.MethodGet, "/api/tasks?project=Work&status=done", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decodeList(t, w)
		require.Len(t, list, 1)
		assert.Equal(t, "write report", list[0]["title"])
	})

	t.Run("delete then re-delete", func(t *testing.T) {
		w := ts.do(http.MethodDelete, "/api/tasks/"+taskID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Task removed", decode(t, w)["message"])

		w = ts.do(http.MethodDelete, "/api/tasks/"+taskID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCrossUserAccess(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register("alice@example.com")
	bob := ts.register("bob@example.com")

	w := ts.do(http.MethodPost, "/api/projects", alice, gin.H{"name": "Private"})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := decode(t, w)["id"].(string)

	w = ts.do(http.MethodPost, "/api/tasks", alice, gin.H{"title": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decode(t, w)["id"].(string)

	t.Run("targeted operations are 404 for the other user", func(t *testing.T) {
		for _, req := range []struct{ method, path string }{
			{http.MethodPut, "/api/projects/" + projectID},
			{http.MethodDelete, "/api/projects/" + projectID},
			{http.MethodPut, "/api/tasks/" + taskID},
			{http.MethodDelete, "/api/tasks/" + taskID},
		} {
			var body gin.H
			if req.method == http.MethodPut {
				body = gin.H{"color": "#000"}
			}
			w := ts.do(req.method, req.path, bob, body)
			assert.Equal(t, http.StatusNotFound, w.Code, fmt.Sprintf("%s %s", req.method, req.path))
		}
	})

	t.Run("listings never leak", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/projects", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))

		w = ts.do(http.MethodGet, "/api/tasks", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})
}

func TestDeleteProjectCascadesOverAPI(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("alice@example.com")

	w := ts.do(http.MethodPost, "/api/projects", token, gin.H{"name": "Work"})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := decode(t, w)["id"].(string)

	for _, title := range []string{"a", "b", "c"} {
		w := ts.do(http.MethodPost, "/api/tasks", token, gin.H{"title": title, "project": "Work"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = ts.do(http.MethodDelete, "/api/projects/"+projectID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	w = ts.do(http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeList(t, w)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Equal(t, "General", task["project"])
	}
}
