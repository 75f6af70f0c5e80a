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


package openai

import (
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/tmc/langchaingo/llms"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// Both parsers share one underlying model client.
type Provider struct {
	config     *ai.Config
	query      *QueryParser
	postSearch *PostQueryParser
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	model, err := newModel(config)
	if err != nil {
		return nil, err
	}
	return newProvider(model, config), nil
}

// NewProviderWithModel creates a provider whose parsers use model.
func NewProviderWithModel(model llms.Model, config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newProvider(model, config), nil
}

func newProvider(model llms.Model, config *ai.Config) *Provider {
	return &Provider{
		config:     config,
		query:      newQueryParserWithModel(model, config),
		postSearch: newPostQueryParserWithModel(model, config),
		logger:     slog.Default().With("component", "openai-provider"),
	}
}

// QueryParser returns the creator query parser.
func (p *Provider) QueryParser() ai.QueryParser {
	return p.query
}

// PostQueryParser returns the post search parser.
func (p *Provider) PostQueryParser() ai.PostQueryParser {
	return p.postSearch
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
