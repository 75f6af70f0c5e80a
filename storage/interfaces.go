package storage

import (
	"context"

	"github.com/poiesic/scout/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CreatorStore provides operations for managing the creator roster.
type CreatorStore interface {
	// AddCreators inserts or replaces creators. Each creator is validated
	// first; an invalid creator aborts the whole call. A creator keeps its
	// roster position from its first insertion.
	AddCreators(ctx context.Context, creators ...*core.Creator) error

	// GetCreator retrieves a single creator by ID.
	// Returns ErrNotFound if the creator doesn't exist.
	GetCreator(ctx context.Context, id string) (*core.Creator, error)

	// ListCreators returns the whole roster in roster order.
	ListCreators(ctx context.Context) ([]core.Creator, error)

	// GetCreatorsByTopic returns creators with the given topic, compared
	// case-insensitively, in roster order.
	GetCreatorsByTopic(ctx context.Context, topic string) ([]core.Creator, error)

	// DeleteCreators removes creators and all of their posts.
	// Returns ErrNotFound if any creator doesn't exist.
	DeleteCreators(ctx context.Context, ids ...string) error
}

// PostStore provides operations for managing creator posts.
type PostStore interface {
	// AddPosts inserts or replaces posts. Each post is validated and its
	// owning creator must exist. Scores are never stored.
	AddPosts(ctx context.Context, posts ...*core.Post) error

	// GetPost retrieves a single post by ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetPost(ctx context.Context, id string) (*core.Post, error)

	// GetPosts returns a creator's posts in insertion order.
	// An unknown creator yields an empty slice.
	GetPosts(ctx context.Context, creatorID string) ([]core.Post, error)
}

// CatalogRepository is the persistent reference data the engines run over.
type CatalogRepository interface {
	Repository
	CreatorStore
	PostStore
}
