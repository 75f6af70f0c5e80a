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


package scout

import (
	"io"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/ai/openai"
	"github.com/poiesic/scout/importer"
	"github.com/poiesic/scout/ranking"
	"github.com/poiesic/scout/session"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
)

// Database wires the catalog, the AI parsers and a shared ranker together.
type Database struct {
	backend  *badger.Backend
	catalog  storage.CatalogRepository
	provider ai.AIProvider
	ranker   *ranking.Ranker
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig     *ai.Config
	provider     ai.AIProvider
	inMemory     bool
	rankPoolSize int
	logger       *slog.Logger
}

// WithAIConfig sets the configuration of the OpenAI-compatible parsers.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider uses provider instead of building one from the AI config.
// The database takes ownership and closes it.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the catalog in memory. The path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithRankPoolSize sets the number of ranking workers.
func WithRankPoolSize(size int) DatabaseOption {
	return func(o *databaseOptions) {
		o.rankPoolSize = size
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens the catalog at filePath and prepares the parsers.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	catalog, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			catalog.Close()
			backend.Close()
			return nil, err
		}
	}

	rankOpts := []ranking.Option{ranking.WithLogger(options.logger)}
	if options.rankPoolSize > 0 {
		rankOpts = append(rankOpts, ranking.WithPoolSize(options.rankPoolSize))
	}
	ranker, err := ranking.NewRanker(rankOpts...)
	if err != nil {
		provider.Close()
		catalog.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		catalog:  catalog,
		provider: provider,
		ranker:   ranker,
		logger:   options.logger.With("component", "scout"),
	}, nil
}

// Close releases the ranker, the AI provider and the catalog.
func (db *Database) Close() error {
	db.ranker.Release()

	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.catalog.Close(); err != nil {
		db.logger.Error("error closing catalog", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Catalog returns the roster and post store.
func (db *Database) Catalog() storage.CatalogRepository {
	return db.catalog
}

// NewSession starts a creator-discovery session over the catalog roster.
func (db *Database) NewSession(opts ...session.Option) (*session.Session, error) {
	return session.NewSession(db.provider.QueryParser(), db.catalog,
		append([]session.Option{session.WithLogger(db.logger)}, opts...)...)
}

// NewPostSearch creates a post search over the catalog that ranks on the
// shared worker pool.
func (db *Database) NewPostSearch(opts ...session.Option) (*session.PostSearch, error) {
	return session.NewPostSearch(db.provider.PostQueryParser(), db.catalog,
		append([]session.Option{session.WithLogger(db.logger), session.WithRanker(db.ranker)}, opts...)...)
}

// NewImporter creates an importer that writes into the catalog.
// A nil config uses importer.DefaultConfig.
func (db *Database) NewImporter(config *importer.Config, progress io.Writer) (*importer.Importer, error) {
	return importer.NewImporter(db.catalog, config, progress)
}
