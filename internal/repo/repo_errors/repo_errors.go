package repo_errors

import "errors"

var (
	ErrNotFound        = errors.New("entity not found")
	ErrVersionConflict = errors.New("entity version conflict")
)
