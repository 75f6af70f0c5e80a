package importer

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidFixture is returned when a fixture cannot be parsed or
	// fails validation.
	ErrInvalidFixture = errors.New("invalid fixture")

	// ErrCatalogRequired is returned when no catalog is given.
	ErrCatalogRequired = errors.New("catalog is required")
)
