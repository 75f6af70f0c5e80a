package importer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// batchWriter writes items in fixed-size batches, retrying each batch.
type batchWriter[T any] struct {
	size       int
	maxRetries int
	retryDelay time.Duration
	write      func(ctx context.Context, batch []T) error
}

// run writes every item, advancing tracker after each batch.
func (w *batchWriter[T]) run(ctx context.Context, items []T, tracker *ProgressTracker) error {
	for batch := range slices.Chunk(items, max(w.size, 1)) {
		err := RetryWithBackoff(ctx, func(ctx context.Context) error {
			err := w.write(ctx, batch)
			if isPermanent(err) {
				return Permanent(err)
			}
			return err
		}, w.maxRetries, w.retryDelay)
		if err != nil {
			return fmt.Errorf("failed to write batch after %d items: %w", tracker.Current(), err)
		}
		tracker.Increment(len(batch))
	}
	return nil
}

// isPermanent reports whether err is a data problem that retrying cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, core.ErrInvalidCreator) ||
		errors.Is(err, core.ErrInvalidPost) ||
		errors.Is(err, storage.ErrUnknownCreator) ||
		errors.Is(err, storage.ErrStorageClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
