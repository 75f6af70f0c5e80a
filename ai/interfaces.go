package ai

import (
	"context"

	"github.com/poiesic/scout/core"
)

// QueryParser turns a free-text creator query into structured criteria.
// Implementations must be thread-safe for concurrent use.
type QueryParser interface {
	// ParseQuery interprets input. isFirst reports whether this is the
	// first query of a session, which makes ROOT the natural operator.
	// Returns an error if parsing fails; callers are expected to fall back.
	ParseQuery(ctx context.Context, input string, isFirst bool) (*ParsedQuery, error)
}

// PostQueryParser turns a free-text post search into a filter state and an
// optional sort preference.
// Implementations must be thread-safe for concurrent use.
type PostQueryParser interface {
	// ParsePostQuery interprets input. Every field of the result is optional.
	ParsePostQuery(ctx context.Context, input string) (*ParsedPostQuery, error)
}

// SemanticFilterType is the display category of a SemanticFilter.
type SemanticFilterType string

const (
	SemanticVisual  SemanticFilterType = "visual"
	SemanticAudio   SemanticFilterType = "audio"
	SemanticContext SemanticFilterType = "context"
	SemanticNotes   SemanticFilterType = "notes"
)

// SemanticFilter describes what evidence a query looks for. It is used for
// display only and never evaluated.
type SemanticFilter struct {
	Type        SemanticFilterType
	Label       string
	Description string
}

// ParsedQuery is the structured form of a creator query.
// Operator and Description may be empty when the parser could not decide.
type ParsedQuery struct {
	Operator        core.Operator
	Description     string
	Filters         core.FilterCriteria
	SemanticFilters []SemanticFilter
}

// ParsedPostQuery is the structured form of a post search.
// An empty SortBy means no preference.
type ParsedPostQuery struct {
	Filters core.PostFilterState
	SortBy  core.SortKey
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the parsers, ensuring they share
// configuration and resources appropriately.
type AIProvider interface {
	// QueryParser returns the creator query parser.
	// The returned QueryParser is safe for concurrent use.
	QueryParser() QueryParser

	// PostQueryParser returns the post search parser.
	// The returned PostQueryParser is safe for concurrent use.
	PostQueryParser() PostQueryParser

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
