package config

import "errors"

var (
	// ErrInvalidStartURL is returned when the start URL is not an absolute http(s) URL
	ErrInvalidStartURL = errors.New("start URL must be an absolute http or https URL")
	// ErrInvalidMaxDepth is returned when max depth is negative
	ErrInvalidMaxDepth = errors.New("max_depth must not be negative")
	// ErrInvalidMaxPages is returned when max pages is not greater than 0
	ErrInvalidMaxPages = errors.New("max_pages must be greater than 0")
	// ErrInvalidTimeout is returned when page timeout is not greater than 0
	ErrInvalidTimeout = errors.New("page_timeout must be greater than 0")
	// ErrEmptyDatabasePath is returned when database path is empty
	ErrEmptyDatabasePath = errors.New("database_path cannot be empty")
)
