package repository

import "errors"

// ErrNotFound is returned when a single-record lookup matches nothing
var ErrNotFound = errors.New("not found")
