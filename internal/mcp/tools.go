package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/projtrack/internal/domain/project"
)

// ListProjectsParams are the arguments of list_projects. A nil Limit means
// the default page size.
type ListProjectsParams struct {
	Status string `json:"status,omitempty" jsonschema:"exact status to filter by: active, maintenance, deprecated or archived"`
	Limit  *int   `json:"limit,omitempty" jsonschema:"maximum number of projects to return, default 50"`
}

// GetProjectParams are the arguments of get_project.
type GetProjectParams struct {
	ProjectName string `json:"project_name" jsonschema:"full project name such as com.azure.TelemetryHub"`
}

// TeamProjectsParams are the arguments of list_team_projects.
type TeamProjectsParams struct {
	TeamName string `json:"team_name" jsonschema:"team name such as Platform Engineering"`
}

// TemplateProjectsParams are the arguments of list_template_projects.
type TemplateProjectsParams struct {
	TemplateType string `json:"template_type" jsonschema:"template type such as microservice-basic"`
}

// NoParams is the empty argument object of list_teams and get_statistics.
type NoParams struct{}

type toolHandlers struct {
	projects ProjectService
}

func registerTools(server *sdkmcp.Server, projects ProjectService) {
	h := &toolHandlers{projects: projects}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects in generation order, optionally filtered by exact status. total counts matches before the limit is applied.",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project by its full name, ignoring case",
	}, h.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_team_projects",
		Description: "List the projects owned by a team, ignoring case",
	}, h.teamProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_template_projects",
		Description: "List the projects that use a template type, ignoring case",
	}, h.templateProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_teams",
		Description: "Summarize every team: project count, active projects and templates used",
	}, h.listTeams)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_statistics",
		Description: "Dataset-wide totals by status, team count and template usage",
	}, h.statistics)
}

func (h *toolHandlers) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, project.ProjectList, error) {
	limit := project.DefaultLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	list, err := h.projects.List(ctx, project.ListOptions{Status: in.Status, Limit: limit})
	if err != nil {
		return nil, project.ProjectList{}, err
	}
	return nil, *list, nil
}

func (h *toolHandlers) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, project.Project, error) {
	proj, err := h.projects.Get(ctx, in.ProjectName)
	if err != nil {
		return nil, project.Project{}, err
	}
	return nil, *proj, nil
}

func (h *toolHandlers) teamProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, in TeamProjectsParams) (*sdkmcp.CallToolResult, project.TeamProjects, error) {
	team, err := h.projects.ListByTeam(ctx, in.TeamName)
	if err != nil {
		return nil, project.TeamProjects{}, err
	}
	return nil, *team, nil
}

func (h *toolHandlers) templateProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, in TemplateProjectsParams) (*sdkmcp.CallToolResult, project.TemplateProjects, error) {
	tmpl, err := h.projects.ListByTemplate(ctx, in.TemplateType)
	if err != nil {
		return nil, project.TemplateProjects{}, err
	}
	return nil, *tmpl, nil
}

func (h *toolHandlers) listTeams(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, project.TeamsOverview, error) {
	overview, err := h.projects.SummarizeTeams(ctx)
	if err != nil {
		return nil, project.TeamsOverview{}, err
	}
	return nil, *overview, nil
}

func (h *toolHandlers) statistics(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, project.Stats, error) {
	stats, err := h.projects.Statistics(ctx)
	if err != nil {
		return nil, project.Stats{}, err
	}
	return nil, *stats, nil
}
