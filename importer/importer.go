// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// Config holds configuration for an import.
type Config struct {
	// BatchSize is the number of records written per transaction
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary describes a completed import.
type Summary struct {
	Creators int
	Posts    int
	Elapsed  time.Duration
}

// Importer writes fixtures into a catalog.
type Importer struct {
	catalog  storage.CatalogRepository
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewImporter creates a new importer.
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewImporter(catalog storage.CatalogRepository, config *Config, progress io.Writer) (*Importer, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Importer{
		catalog:  catalog,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "importer"),
	}, nil
}

// Run validates the fixture and writes its creators, then its posts.
// Creators are written first so every post finds its owner. Existing
// records with the same IDs are replaced.
func (im *Importer) Run(ctx context.Context, fixture *Fixture) (*Summary, error) {
	if fixture == nil {
		return nil, fmt.Errorf("%w: fixture is nil", ErrInvalidFixture)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	creators, posts := fixture.Records()
	start := time.Now()

	if len(creators) == 0 {
		fmt.Fprintf(im.progress, "No creators found in fixture (0 records)\n")
		return &Summary{}, nil
	}

	fmt.Fprintf(im.progress, "Importing %d creators and %d posts (batch size: %d)\n",
		len(creators), len(posts), im.config.BatchSize)

	creatorWriter := &batchWriter[*core.Creator]{
		size:       im.config.BatchSize,
		maxRetries: im.config.MaxRetries,
		retryDelay: im.config.RetryDelay,
		write: func(ctx context.Context, batch []*core.Creator) error {
			return im.catalog.AddCreators(ctx, batch...)
		},
	}
	if err := phase(ctx, im, "creators", creators, creatorWriter); err != nil {
		return nil, err
	}

	postWriter := &batchWriter[*core.Post]{
		size:       im.config.BatchSize,
		maxRetries: im.config.MaxRetries,
		retryDelay: im.config.RetryDelay,
		write: func(ctx context.Context, batch []*core.Post) error {
			return im.catalog.AddPosts(ctx, batch...)
		},
	}
	if err := phase(ctx, im, "posts", posts, postWriter); err != nil {
		return nil, err
	}

	summary := &Summary{Creators: len(creators), Posts: len(posts), Elapsed: time.Since(start)}
	fmt.Fprintf(im.progress, "Import complete. Wrote %d creators and %d posts in %v\n",
		summary.Creators, summary.Posts, summary.Elapsed.Round(time.Millisecond))
	im.logger.Info("import complete", "creators", summary.Creators, "posts", summary.Posts, "elapsed", summary.Elapsed)
	return summary, nil
}

func phase[T any](ctx context.Context, im *Importer, label string, items []T, w *batchWriter[T]) error {
	if len(items) == 0 {
		return nil
	}
	tracker := NewProgressTracker(im.progress, label, len(items), im.config.ReportInterval)
	tracker.Start()
	err := w.run(ctx, items, tracker)
	tracker.Finish()
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", label, err)
	}
	return nil
}
