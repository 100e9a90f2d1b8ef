package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rpggio/projtrack/internal/catalog"
	"github.com/rpggio/projtrack/internal/domain/project"
	"github.com/rpggio/projtrack/internal/mcp"
	"github.com/rpggio/projtrack/internal/memory"
	"github.com/rpggio/projtrack/internal/sqlite"
	"github.com/rpggio/projtrack/internal/transport"
)

// Now is the fixed clock used for generated test datasets.
var Now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

type Options struct {
	Seed   uint64
	Count  int
	SQLite bool
	// Projects replaces the generated dataset when non-nil.
	Projects []project.Project
}

type TestServer struct {
	Server   *httptest.Server
	Projects []project.Project
}

// New starts the full HTTP stack, MCP endpoint included, over a dataset.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	projects := opts.Projects
	if projects == nil {
		count := opts.Count
		if count == 0 {
			count = 50
		}
		projects = project.NewGenerator(catalog.Default(), project.NewRand(opts.Seed), Now).Generate(count)
	}

	logger := zaptest.NewLogger(t)

	var repo project.Repository = memory.NewProjectRepository(projects)
	if opts.SQLite {
		db, err := sqlite.New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.NoError(t, db.RunMigrations())

		sqlRepo := sqlite.NewProjectRepository(db)
		require.NoError(t, sqlRepo.Load(context.Background(), projects))
		repo = sqlRepo
	}

	projectSvc := project.NewService(repo, logger)
	mcpServer := mcp.NewServer(mcp.Config{Projects: projectSvc, Logger: logger, Version: "test"})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Projects: projectSvc,
		MCP:      mcp.NewHTTPHandler(mcpServer),
		Logger:   logger,
		Version:  "test",
	}))
	t.Cleanup(func() {
		server.Client().CloseIdleConnections()
		server.Close()
	})

	return &TestServer{Server: server, Projects: projects}
}

// URL joins path onto the server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
