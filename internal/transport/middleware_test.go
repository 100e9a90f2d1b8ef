package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rpggio/projtrack/internal/domain/project"
)

type failingService struct {
	err error
}

func (f failingService) List(context.Context, project.ListOptions) (*project.ProjectList, error) {
	return nil, f.err
}

func (f failingService) Get(context.Context, string) (*project.Project, error) {
	return nil, f.err
}

func (f failingService) ListByTeam(context.Context, string) (*project.TeamProjects, error) {
	return nil, f.err
}

func (f failingService) ListByTemplate(context.Context, string) (*project.TemplateProjects, error) {
	return nil, f.err
}

func (f failingService) SummarizeTeams(context.Context) (*project.TeamsOverview, error) {
	return nil, f.err
}

func (f failingService) Statistics(context.Context) (*project.Stats, error) {
	return nil, f.err
}

func TestRequestLogger_LogsRequests(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestID(RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set(RequestIDHeader, "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/api/v1/stats", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.Equal(t, "abc", fields["request_id"])
}

func TestRequestLogger_DefaultsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}

func TestRequestLogger_NilLogger(t *testing.T) {
	called := false
	handler := RequestLogger(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestServer_InternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := NewServer(Config{
		Projects: failingService{err: errors.New("disk on fire")},
		Logger:   zap.New(core),
	})

	for _, path := range []string{
		"/api/v1/projects",
		"/api/v1/projects/com.aws.Thing",
		"/api/v1/teams",
		"/api/v1/teams/x/projects",
		"/api/v1/templates/x/projects",
		"/api/v1/stats",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Internal Server Error", body.Detail)
	}

	require.Equal(t, 6, logs.FilterMessage("request failed").Len())
}

func TestServer_WrappedNotFound(t *testing.T) {
	router := NewServer(Config{
		Projects: failingService{err: &project.NotFoundError{Detail: "Project 'x' not found"}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/x", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"detail":"Project 'x' not found"}`, rec.Body.String())
}

func TestServer_MCPNotMountedWhenNil(t *testing.T) {
	router := NewServer(Config{Projects: failingService{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", project.DefaultLimit},
		{"10", 10},
		{"0", 0},
		{"-3", -3},
		{"abc", project.DefaultLimit},
		{"1.5", project.DefaultLimit},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, parseLimit(tt.raw), tt.raw)
	}
}
