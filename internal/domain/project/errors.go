package project

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a lookup or filter matched no project.
var ErrNotFound = errors.New("project not found")

// NotFoundError carries the client-facing detail of a failed lookup.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return e.Detail
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func projectNotFound(name string) error {
	return &NotFoundError{Detail: fmt.Sprintf("Project '%s' not found", name)}
}

func teamNotFound(team string) error {
	return &NotFoundError{Detail: fmt.Sprintf("No projects found for team '%s'", team)}
}

func templateNotFound(template string) error {
	return &NotFoundError{Detail: fmt.Sprintf("No projects found using template '%s'", template)}
}
