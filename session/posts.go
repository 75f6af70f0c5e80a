package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/filter"
	"github.com/poiesic/scout/ranking"
)

// DefaultPostParseTimeout bounds post query parsing unless overridden.
const DefaultPostParseTimeout = 5 * time.Second

// PostSource supplies one creator's posts.
type PostSource interface {
	GetPosts(ctx context.Context, creatorID string) ([]core.Post, error)
}

// PostSearchResult is the outcome of one post search.
type PostSearchResult struct {
	// Posts are ranked over the full collection, then filtered and sorted.
	Posts []core.Post
	// Total is the number of posts before filtering.
	Total   int
	Filters core.PostFilterState
	// SortBy is empty when the posts keep ranking order.
	SortBy core.SortKey
	// Fallback is set when the parser failed and the input was used as a
	// plain search term.
	Fallback bool
}

// PostSearch answers free-text searches over a creator's posts.
// It is safe for concurrent use.
type PostSearch struct {
	parser ai.PostQueryParser
	posts  PostSource
	settings
}

// NewPostSearch creates a post search over posts using parser.
func NewPostSearch(parser ai.PostQueryParser, posts PostSource, opts ...Option) (*PostSearch, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	if posts == nil {
		return nil, ErrPostSourceRequired
	}

	ps := &PostSearch{
		parser: parser,
		posts:  posts,
		settings: settings{
			logger:       slog.Default(),
			parseTimeout: DefaultPostParseTimeout,
		},
	}
	if err := applyOptions(&ps.settings, opts); err != nil {
		return nil, err
	}
	ps.logger = ps.logger.With("component", "post-search")
	return ps, nil
}

// Search ranks the creator's posts and narrows them by input.
// An empty input returns every post in ranking order.
func (ps *PostSearch) Search(ctx context.Context, creatorID, input string) (*PostSearchResult, error) {
	posts, err := ps.posts.GetPosts(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts for %s: %w", creatorID, err)
	}

	ranked, err := ps.rank(ctx, posts)
	if err != nil {
		return nil, err
	}

	result := &PostSearchResult{Posts: ranked, Total: len(ranked)}
	input = strings.TrimSpace(input)
	if input == "" {
		return result, nil
	}

	parsed, err := ps.parse(ctx, input)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		ps.logger.Warn("post query parse failed, searching captions", "input", input, "error", err)
		parsed = &ai.ParsedPostQuery{Filters: core.PostFilterState{SearchTerm: input}}
		result.Fallback = true
	}

	result.Filters = parsed.Filters
	result.SortBy = parsed.SortBy
	result.Posts = filter.FilterPosts(ranked, parsed.Filters)
	if parsed.SortBy != "" {
		result.Posts = ranking.SortPosts(result.Posts, parsed.SortBy)
	}

	ps.logger.Debug("post search",
		"creator", creatorID,
		"total", result.Total,
		"matched", len(result.Posts),
		"sort", result.SortBy,
		"fallback", result.Fallback)
	return result, nil
}

func (ps *PostSearch) rank(ctx context.Context, posts []core.Post) ([]core.Post, error) {
	if ps.ranker == nil {
		return ranking.RankPosts(posts), nil
	}
	ranked, err := ps.ranker.Rank(ctx, posts)
	if err != nil {
		return nil, fmt.Errorf("failed to rank posts: %w", err)
	}
	return ranked, nil
}

func (ps *PostSearch) parse(ctx context.Context, input string) (*ai.ParsedPostQuery, error) {
	if ps.parseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ps.parseTimeout)
		defer cancel()
	}
	parsed, err := ps.parser.ParsePostQuery(ctx, input)
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, ErrNoParseResult
	}
	return parsed, nil
}
