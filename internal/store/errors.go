package store

import "errors"

// Validation errors. Unknown identifiers are never errors: every operation
// targeting a missing list, task, or tag is a silent no-op, because UI-driven
// calls race benignly against deletions. Only structurally invalid arguments
// are rejected.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyContent    = errors.New("task content cannot be empty")
	ErrInvalidColor    = errors.New("invalid color format (must be hex color like #FFFFFF)")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPriority = errors.New("invalid priority: must be low, medium, or high")
)
