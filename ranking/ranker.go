package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scout/core"
)

// Ranker ranks post collections, scoring posts concurrently on a worker pool.
// A Ranker is safe for concurrent use until Release is called.
type Ranker struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithPoolSize sets the worker pool size for concurrent scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Ranker) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a new Ranker.
func NewRanker(opts ...Option) (*Ranker, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Ranker{
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Rank produces the same result as RankPosts. Scoring runs on the pool;
// normalization and ordering wait for every post to be scored.
// It fails only if ctx is cancelled or a task cannot be scheduled.
func (r *Ranker) Rank(ctx context.Context, posts []core.Post) ([]core.Post, error) {
	if r.pool.IsClosed() {
		return nil, ErrRankerReleased
	}

	ranked := make([]core.Post, len(posts))
	var wg sync.WaitGroup

	for i := range posts {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			ranked[i] = scorePost(posts[i])
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			r.logger.Error("error submitting scoring task", "postID", posts[i].ID, "err", err)
			return nil, fmt.Errorf("%w: post %s: %w", ErrScoringFailed, posts[i].ID, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finish(ranked)
	r.logger.Debug("ranked posts", "count", len(ranked))
	return ranked, nil
}

// Release releases the worker pool.
// The Ranker should not be used after calling Release.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
