package service

import "errors"

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrForbidden is returned when a task exists but belongs to another user.
	ErrForbidden = errors.New("task belongs to another user")
	// ErrUnauthorized is returned when a token cannot be resolved to a user.
	ErrUnauthorized = errors.New("unauthorized")
)
