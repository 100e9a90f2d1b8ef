package mcp

import (
	"context"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/rpggio/projtrack/internal/domain/project"
)

const serverInstructions = `projtrack answers read-only questions about the organization's projects.

- list_projects: page through projects, optionally by exact status (active, maintenance, deprecated, archived).
- get_project: one project by full name such as com.azure.TelemetryHub (case-insensitive).
- list_team_projects / list_template_projects: projects of a team or using a template type (case-insensitive).
- list_teams: per-team counts and templates in use.
- get_statistics: totals by status and template usage.

The dataset is generated at startup and never changes while the server runs.`

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	List(ctx context.Context, opts project.ListOptions) (*project.ProjectList, error)
	Get(ctx context.Context, name string) (*project.Project, error)
	ListByTeam(ctx context.Context, team string) (*project.TeamProjects, error)
	ListByTemplate(ctx context.Context, template string) (*project.TemplateProjects, error)
	SummarizeTeams(ctx context.Context) (*project.TeamsOverview, error)
	Statistics(ctx context.Context) (*project.Stats, error)
}

// Config contains server configuration.
type Config struct {
	Projects ProjectService
	Logger   *zap.Logger
	Version  string
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "projtrack",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Projects)

	return server
}

// NewHTTPHandler serves the MCP server over streamable HTTP. The server
// keeps no per-client state, so sessions are not tracked.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)
}
