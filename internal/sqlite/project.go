package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/projtrack/internal/domain/project"
	"github.com/rpggio/projtrack/internal/repository"
)

// ErrDuplicateProject is returned when a loaded dataset repeats a project ID.
var ErrDuplicateProject = errors.New("duplicate project id")

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Load replaces any stored dataset with projects in a single transaction.
// Generation order is kept in the seq column. The *_key columns hold
// project.MatchKey values so matching lowers case as the memory store does.
func (r *ProjectRepository) Load(ctx context.Context, projects []project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM project_templates`, `DELETE FROM projects`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear dataset: %w", err)
		}
	}

	projectQuery := `
		INSERT INTO projects (seq, project_id, project_name, project_name_key, team_name, team_name_key, template_count, status, repository_url, created_date, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	templateQuery := `
		INSERT INTO project_templates (project_seq, position, template, template_key, version)
		VALUES (?, ?, ?, ?, ?)
	`

	for seq, proj := range projects {
		_, err := tx.ExecContext(ctx, projectQuery,
			seq,
			proj.ProjectID,
			proj.ProjectName,
			project.MatchKey(proj.ProjectName),
			proj.TeamName,
			project.MatchKey(proj.TeamName),
			proj.TemplateCount,
			string(proj.Status),
			proj.RepositoryURL,
			proj.CreatedDate,
			proj.LastUpdated,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateProject, proj.ProjectID)
		}
		if err != nil {
			return fmt.Errorf("failed to insert project: %w", err)
		}

		for pos, tmpl := range proj.Templates {
			version := ""
			if pos < len(proj.TemplateVersions) {
				version = proj.TemplateVersions[pos]
			}
			if _, err := tx.ExecContext(ctx, templateQuery, seq, pos, tmpl, project.MatchKey(tmpl), version); err != nil {
				return fmt.Errorf("failed to insert project template: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List returns all projects, or those with the exact status when given
func (r *ProjectRepository) List(ctx context.Context, status string) ([]project.Project, error) {
	if status == "" {
		return r.query(ctx, "1 = 1")
	}
	return r.query(ctx, "p.status = ?", status)
}

// FindByName returns the first project whose name matches ignoring case
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*project.Project, error) {
	projects, err := r.query(ctx, "p.seq = (SELECT MIN(seq) FROM projects WHERE project_name_key = ?)", project.MatchKey(name))
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, repository.ErrNotFound
	}
	return &projects[0], nil
}

// ListByTeam returns projects whose team matches ignoring case
func (r *ProjectRepository) ListByTeam(ctx context.Context, team string) ([]project.Project, error) {
	return r.query(ctx, "p.team_name_key = ?", project.MatchKey(team))
}

// ListByTemplate returns projects that use the template, ignoring case
func (r *ProjectRepository) ListByTemplate(ctx context.Context, template string) ([]project.Project, error) {
	return r.query(ctx, "p.seq IN (SELECT project_seq FROM project_templates WHERE template_key = ?)", project.MatchKey(template))
}

// query loads projects matching where, joined with their templates, in
// generation order.
func (r *ProjectRepository) query(ctx context.Context, where string, args ...any) ([]project.Project, error) {
	query := `
		SELECT
			p.seq,
			p.project_id,
			p.project_name,
			p.team_name,
			p.template_count,
			p.status,
			p.repository_url,
			p.created_date,
			p.last_updated,
			t.template,
			t.version
		FROM projects p
		LEFT JOIN project_templates t ON t.project_seq = p.seq
		WHERE ` + where + `
		ORDER BY p.seq, t.position
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	lastSeq := int64(-1)
	for rows.Next() {
		var (
			seq      int64
			proj     project.Project
			status   string
			template sql.NullString
			version  sql.NullString
		)
		err := rows.Scan(
			&seq,
			&proj.ProjectID,
			&proj.ProjectName,
			&proj.TeamName,
			&proj.TemplateCount,
			&status,
			&proj.RepositoryURL,
			&proj.CreatedDate,
			&proj.LastUpdated,
			&template,
			&version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		if seq != lastSeq {
			proj.Status = project.Status(status)
			proj.Templates = []string{}
			proj.TemplateVersions = []string{}
			projects = append(projects, proj)
			lastSeq = seq
		}
		if template.Valid {
			cur := &projects[len(projects)-1]
			cur.Templates = append(cur.Templates, template.String)
			cur.TemplateVersions = append(cur.TemplateVersions, version.String)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}
