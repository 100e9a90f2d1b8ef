package project

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rpggio/projtrack/internal/repository"
)

// Service answers read-only queries over the project dataset.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns projects matching opts.Status, truncated to opts.Limit.
// A negative limit drops that many records from the end.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ProjectList, error) {
	projects, err := s.repo.List(ctx, opts.Status)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	page := projects[:pageEnd(opts.Limit, len(projects))]
	return &ProjectList{
		Total:    len(projects),
		Limit:    opts.Limit,
		Projects: nonNil(page),
	}, nil
}

// Get fetches a project by name, ignoring case.
func (s *Service) Get(ctx context.Context, name string) (*Project, error) {
	proj, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, projectNotFound(name)
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// ListByTeam returns the projects of a team, ignoring case.
func (s *Service) ListByTeam(ctx context.Context, team string) (*TeamProjects, error) {
	projects, err := s.repo.ListByTeam(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("listing team projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, teamNotFound(team)
	}
	return &TeamProjects{
		TeamName:     team,
		ProjectCount: len(projects),
		Projects:     projects,
	}, nil
}

// ListByTemplate returns the projects using a template type, ignoring case.
func (s *Service) ListByTemplate(ctx context.Context, template string) (*TemplateProjects, error) {
	projects, err := s.repo.ListByTemplate(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("listing template projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, templateNotFound(template)
	}
	return &TemplateProjects{
		TemplateType: template,
		ProjectCount: len(projects),
		Projects:     projects,
	}, nil
}

// SummarizeTeams groups every project by exact team name.
func (s *Service) SummarizeTeams(ctx context.Context) (*TeamsOverview, error) {
	projects, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("summarizing teams: %w", err)
	}

	acc := newTeamAccumulator()
	for _, p := range projects {
		acc.add(p)
	}
	overview := acc.result()
	s.logger.Debug("summarized teams", zap.Int("teams", overview.TotalTeams), zap.Int("projects", len(projects)))
	return &overview, nil
}

// Statistics computes dataset-wide counts and template usage.
func (s *Service) Statistics(ctx context.Context) (*Stats, error) {
	projects, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("computing statistics: %w", err)
	}

	acc := newStatsAccumulator()
	for _, p := range projects {
		acc.add(p)
	}
	stats := acc.result()
	return &stats, nil
}

// pageEnd returns the exclusive end index of the first limit records,
// counting back from n when limit is negative.
func pageEnd(limit, n int) int {
	if limit < 0 {
		return max(n+limit, 0)
	}
	return min(limit, n)
}

func nonNil(projects []Project) []Project {
	if projects == nil {
		return []Project{}
	}
	return projects
}
