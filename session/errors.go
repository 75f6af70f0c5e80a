package session

import "errors"

var (
	// ErrParserRequired is returned when no query parser is provided.
	ErrParserRequired = errors.New("query parser required")

	// ErrRosterRequired is returned when no roster is provided.
	ErrRosterRequired = errors.New("roster required")

	// ErrPostSourceRequired is returned when no post source is provided.
	ErrPostSourceRequired = errors.New("post source required")

	// ErrEmptyQuery is returned when a submitted query is blank.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNodeNotFound is returned when a node ID is not part of the session.
	ErrNodeNotFound = errors.New("query node not found")

	// ErrNoParseResult is returned when a parser reports success without a result.
	ErrNoParseResult = errors.New("parser returned no result")

	// ErrInvalidTimeout is returned for a negative parse timeout.
	ErrInvalidTimeout = errors.New("parse timeout must not be negative")
)
