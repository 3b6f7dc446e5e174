package core

import "errors"

var (
	// ErrDirectoryUnavailable is returned when a team membership lookup fails.
	ErrDirectoryUnavailable = errors.New("reviewer directory unavailable")
	// ErrHistoryUnavailable is returned when a pull request's commits cannot be fetched.
	ErrHistoryUnavailable = errors.New("commit history unavailable")
	// ErrInvalidRule signals a review rule that failed validation.
	ErrInvalidRule = errors.New("invalid review rule")
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")
)
