package memory

import (
	"context"

	"github.com/rpggio/projtrack/internal/domain/project"
	"github.com/rpggio/projtrack/internal/repository"
)

// ProjectRepository implements project.Repository over an immutable slice
// held in generation order. It needs no locking: nothing writes to the slice
// after construction.
type ProjectRepository struct {
	projects []project.Project
}

// NewProjectRepository creates a repository over a copy of projects.
func NewProjectRepository(projects []project.Project) *ProjectRepository {
	return &ProjectRepository{projects: append([]project.Project(nil), projects...)}
}

// List returns all projects, or those with the exact status when given.
func (r *ProjectRepository) List(_ context.Context, status string) ([]project.Project, error) {
	if status == "" {
		return r.filter(func(project.Project) bool { return true }), nil
	}
	return r.filter(func(p project.Project) bool {
		return string(p.Status) == status
	}), nil
}

// FindByName returns the first project whose name matches ignoring case.
func (r *ProjectRepository) FindByName(_ context.Context, name string) (*project.Project, error) {
	key := project.MatchKey(name)
	for i := range r.projects {
		if project.MatchKey(r.projects[i].ProjectName) == key {
			proj := r.projects[i]
			return &proj, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListByTeam returns projects whose team matches ignoring case.
func (r *ProjectRepository) ListByTeam(_ context.Context, team string) ([]project.Project, error) {
	key := project.MatchKey(team)
	return r.filter(func(p project.Project) bool {
		return project.MatchKey(p.TeamName) == key
	}), nil
}

// ListByTemplate returns projects that use the template, ignoring case.
func (r *ProjectRepository) ListByTemplate(_ context.Context, template string) ([]project.Project, error) {
	key := project.MatchKey(template)
	return r.filter(func(p project.Project) bool {
		for _, tmpl := range p.Templates {
			if project.MatchKey(tmpl) == key {
				return true
			}
		}
		return false
	}), nil
}

func (r *ProjectRepository) filter(keep func(project.Project) bool) []project.Project {
	out := make([]project.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
