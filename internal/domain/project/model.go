package project

import "strings"

// Status is a project's lifecycle state.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusDeprecated  Status = "deprecated"
	StatusArchived    Status = "archived"
)

// Statuses lists every status in draw order.
var Statuses = []Status{StatusActive, StatusMaintenance, StatusDeprecated, StatusArchived}

// Project is one generated project record. Records are never modified after
// generation; the slices are shared between readers.
type Project struct {
	ProjectID        string   `json:"project_id" yaml:"project_id"`
	ProjectName      string   `json:"project_name" yaml:"project_name"`
	TeamName         string   `json:"team_name" yaml:"team_name"`
	TemplateCount    int      `json:"template_count" yaml:"template_count"`
	Templates        []string `json:"templates" yaml:"templates"`
	TemplateVersions []string `json:"template_versions" yaml:"template_versions"`
	Status           Status   `json:"status" yaml:"status"`
	RepositoryURL    string   `json:"repository_url" yaml:"repository_url"`
	CreatedDate      string   `json:"created_date" yaml:"created_date"`
	LastUpdated      string   `json:"last_updated" yaml:"last_updated"`
}

// MatchKey is the key names, teams and templates are compared by when
// matching ignores case. Every repository must fold the same way.
func MatchKey(s string) string {
	return strings.ToLower(s)
}

// ListOptions filters and truncates a project listing.
type ListOptions struct {
	Status string
	Limit  int
}

// DefaultLimit is the page size when the caller gives none.
const DefaultLimit = 50

// ProjectList is a possibly truncated listing. Total counts the filtered
// records before truncation.
type ProjectList struct {
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Projects []Project `json:"projects"`
}

// TeamProjects lists the projects owned by one team.
type TeamProjects struct {
	TeamName     string    `json:"team_name"`
	ProjectCount int       `json:"project_count"`
	Projects     []Project `json:"projects"`
}

// TemplateProjects lists the projects using one template type.
type TemplateProjects struct {
	TemplateType string    `json:"template_type"`
	ProjectCount int       `json:"project_count"`
	Projects     []Project `json:"projects"`
}

// TeamSummary aggregates the projects of a single team.
type TeamSummary struct {
	TeamName       string   `json:"team_name"`
	ProjectCount   int      `json:"project_count"`
	ActiveProjects int      `json:"active_projects"`
	TemplatesUsed  []string `json:"templates_used"`
}

// TeamsOverview is the summary of every team.
type TeamsOverview struct {
	TotalTeams int           `json:"total_teams"`
	Teams      []TeamSummary `json:"teams"`
}

// Stats holds dataset-wide counts. MostUsedTemplate is nil when no record
// references a template.
type Stats struct {
	TotalProjects      int            `json:"total_projects"`
	ActiveProjects     int            `json:"active_projects"`
	ArchivedProjects   int            `json:"archived_projects"`
	DeprecatedProjects int            `json:"deprecated_projects"`
	TotalTeams         int            `json:"total_teams"`
	TemplateUsage      map[string]int `json:"template_usage"`
	MostUsedTemplate   *string        `json:"most_used_template"`
}
