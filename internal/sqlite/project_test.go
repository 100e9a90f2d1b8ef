package sqlite

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/projtrack/internal/catalog"
	"github.com/rpggio/projtrack/internal/domain/project"
	"github.com/rpggio/projtrack/internal/memory"
	"github.com/rpggio/projtrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func fixtureProjects() []project.Project {
	return []project.Project{
		{
			ProjectID:        "PROJ-1000",
			ProjectName:      "com.azure.TelemetryHub",
			TeamName:         "Platform Engineering",
			TemplateCount:    2,
			Templates:        []string{"api-gateway", "event-driven"},
			TemplateVersions: []string{"1.2.3", "4.0.50"},
			Status:           project.StatusActive,
			RepositoryURL:    "https://github.com/company/com.azure.TelemetryHub",
			CreatedDate:      "2025-03-01",
			LastUpdated:      "2024-11-20",
		},
		{
			ProjectID:        "PROJ-1001",
			ProjectName:      "io.npm.KeyVault",
			TeamName:         "Core Services",
			TemplateCount:    1,
			Templates:        []string{"monolith-web"},
			TemplateVersions: []string{"2.0.0"},
			Status:           project.StatusArchived,
			RepositoryURL:    "https://github.com/company/io.npm.KeyVault",
			CreatedDate:      "2024-06-15",
			LastUpdated:      "2025-01-10",
		},
		{
			ProjectID:        "PROJ-1002",
			ProjectName:      "COM.AZURE.TELEMETRYHUB",
			TeamName:         "platform engineering",
			TemplateCount:    1,
			Templates:        []string{"Event-Driven"},
			TemplateVersions: []string{"3.3.3"},
			Status:           project.StatusActive,
			RepositoryURL:    "https://github.com/company/COM.AZURE.TELEMETRYHUB",
			CreatedDate:      "2024-08-08",
			LastUpdated:      "2024-09-09",
		},
	}
}

func newLoadedRepo(t *testing.T, projects []project.Project) *ProjectRepository {
	t.Helper()
	repo := NewProjectRepository(NewTestDB(t))
	require.NoError(t, repo.Load(context.Background(), projects))
	return repo
}

func TestProjectRepository_List(t *testing.T) {
	repo := newLoadedRepo(t, fixtureProjects())
	ctx := context.Background()

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(fixtureProjects(), all))

	active, err := repo.List(ctx, "active")
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "PROJ-1000", active[0].ProjectID)
	require.Equal(t, "PROJ-1002", active[1].ProjectID)

	// Status filter is case-sensitive
	none, err := repo.List(ctx, "ACTIVE")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestProjectRepository_FindByName(t *testing.T) {
	repo := newLoadedRepo(t, fixtureProjects())
	ctx := context.Background()

	proj, err := repo.FindByName(ctx, "com.azure.telemetryhub")
	require.NoError(t, err)
	require.Equal(t, "PROJ-1000", proj.ProjectID, "first match in generation order")
	require.Equal(t, []string{"api-gateway", "event-driven"}, proj.Templates)
	require.Equal(t, []string{"1.2.3", "4.0.50"}, proj.TemplateVersions)

	_, err = repo.FindByName(ctx, "com.azure")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_ListByTeamAndTemplate(t *testing.T) {
	repo := newLoadedRepo(t, fixtureProjects())
	ctx := context.Background()

	team, err := repo.ListByTeam(ctx, "PLATFORM ENGINEERING")
	require.NoError(t, err)
	require.Len(t, team, 2)

	tmpl, err := repo.ListByTemplate(ctx, "event-DRIVEN")
	require.NoError(t, err)
	require.Len(t, tmpl, 2)
	require.Equal(t, "PROJ-1000", tmpl[0].ProjectID)
	require.Len(t, tmpl[0].Templates, 2, "membership filter keeps every template of a match")

	none, err := repo.ListByTemplate(ctx, "serverless-function")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestProjectRepository_LoadDuplicate(t *testing.T) {
	projects := fixtureProjects()
	projects[2].ProjectID = projects[0].ProjectID

	repo := NewProjectRepository(NewTestDB(t))
	err := repo.Load(context.Background(), projects)
	require.ErrorIs(t, err, ErrDuplicateProject)

	// The failed load leaves nothing behind
	all, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestProjectRepository_LoadReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(NewTestDB(t))
	require.NoError(t, repo.Load(ctx, fixtureProjects()))

	replacement := fixtureProjects()[:1]
	require.NoError(t, repo.Load(ctx, replacement))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, replacement[0].ProjectID, all[0].ProjectID)
}

func TestProjectRepository_MatchesMemory(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) }
	projects := project.NewGenerator(catalog.Default(), project.NewRand(7), now).Generate(50)

	sqlRepo := newLoadedRepo(t, projects)
	memRepo := memory.NewProjectRepository(projects)
	ctx := context.Background()

	for _, status := range []string{"", "active", "maintenance", "deprecated", "archived", "bogus"} {
		want, err := memRepo.List(ctx, status)
		require.NoError(t, err)
		got, err := sqlRepo.List(ctx, status)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(want, got), "status %q", status)
	}

	for _, team := range catalog.Default().Teams {
		want, err := memRepo.ListByTeam(ctx, team)
		require.NoError(t, err)
		got, err := sqlRepo.ListByTeam(ctx, team)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(want, got), "team %q", team)
	}

	for _, tmpl := range catalog.Default().Templates {
		want, err := memRepo.ListByTemplate(ctx, tmpl)
		require.NoError(t, err)
		got, err := sqlRepo.ListByTemplate(ctx, tmpl)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(want, got), "template %q", tmpl)
	}

	for _, p := range projects {
		for _, name := range []string{p.ProjectName, strings.ToUpper(p.ProjectName), strings.ToLower(p.ProjectName)} {
			want, err := memRepo.FindByName(ctx, name)
			require.NoError(t, err)
			got, err := sqlRepo.FindByName(ctx, name)
			require.NoError(t, err)
			require.Equal(t, want.ProjectID, got.ProjectID, name)
		}
	}
}

func TestProjectRepository_FoldsLikeMemory(t *testing.T) {
	projects := []project.Project{
		{ProjectID: "PROJ-1000", ProjectName: "com.aws.TaskRunner", TeamName: "Site Reliability Group", Templates: []string{"serverless-function"}, TemplateVersions: []string{"1.0.0"}, Status: project.StatusActive},
		{ProjectID: "PROJ-1001", ProjectName: "fr.Équipe.Portail", TeamName: "Équipe Données", Templates: []string{"Modèle-Web"}, TemplateVersions: []string{"2.0.0"}, Status: project.StatusActive},
	}
	sqlRepo := newLoadedRepo(t, projects)
	memRepo := memory.NewProjectRepository(projects)
	ctx := context.Background()

	names := []string{"COM.AWS.TASKRUNNER", "com.awſ.TaskRunner", "FR.ÉQUIPE.PORTAIL", "fr.équipe.portail"}
	for _, name := range names {
		want, wantErr := memRepo.FindByName(ctx, name)
		got, gotErr := sqlRepo.FindByName(ctx, name)
		require.Equal(t, wantErr, gotErr, name)
		if wantErr == nil {
			require.Equal(t, want.ProjectID, got.ProjectID, name)
		}
	}
	_, err := sqlRepo.FindByName(ctx, "com.awſ.TaskRunner")
	require.ErrorIs(t, err, repository.ErrNotFound, "long s is not a lowercase s")
	found, err := sqlRepo.FindByName(ctx, "FR.ÉQUIPE.PORTAIL")
	require.NoError(t, err)
	require.Equal(t, "PROJ-1001", found.ProjectID)

	teams := map[string]int{"site reliability group": 1, "ſite Reliability Group": 0, "ÉQUIPE DONNÉES": 1}
	for team, count := range teams {
		want, err := memRepo.ListByTeam(ctx, team)
		require.NoError(t, err)
		got, err := sqlRepo.ListByTeam(ctx, team)
		require.NoError(t, err)
		require.Len(t, want, count, team)
		require.Empty(t, cmp.Diff(want, got), team)
	}

	templates := map[string]int{"SERVERLESS-FUNCTION": 1, "ſerverleſſ-function": 0, "modèle-web": 1}
	for tmpl, count := range templates {
		want, err := memRepo.ListByTemplate(ctx, tmpl)
		require.NoError(t, err)
		got, err := sqlRepo.ListByTemplate(ctx, tmpl)
		require.NoError(t, err)
		require.Len(t, want, count, tmpl)
		require.Empty(t, cmp.Diff(want, got), tmpl)
	}
}
