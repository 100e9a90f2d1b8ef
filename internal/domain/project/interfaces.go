package project

import "context"

// Repository provides read access to the generated projects. Every method
// returns records in generation order.
type Repository interface {
	// List returns all projects, or those whose status equals status exactly
	// when it is non-empty.
	List(ctx context.Context, status string) ([]Project, error)
	// FindByName returns the first project whose name matches case-insensitively.
	FindByName(ctx context.Context, name string) (*Project, error)
	ListByTeam(ctx context.Context, team string) ([]Project, error)
	ListByTemplate(ctx context.Context, template string) ([]Project, error)
}
