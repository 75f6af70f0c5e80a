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


package mock

import "github.com/poiesic/scout/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock query and post parsers.
type MockProvider struct {
	query  *MockQueryParser
	posts  *MockPostQueryParser
	closed bool
}

// NewMockProvider creates a new mock provider with default mock parsers.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockQueryParser()/GetMockPostQueryParser() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		query: NewMockQueryParser(),
		posts: NewMockPostQueryParser(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock parsers.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(query *MockQueryParser, posts *MockPostQueryParser) ai.AIProvider {
	return &MockProvider{
		query: query,
		posts: posts,
	}
}

// QueryParser returns the mock query parser.
func (p *MockProvider) QueryParser() ai.QueryParser {
	return p.query
}

// PostQueryParser returns the mock post parser.
func (p *MockProvider) PostQueryParser() ai.PostQueryParser {
	return p.posts
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockQueryParser returns the underlying mock query parser for test assertions.
func (p *MockProvider) GetMockQueryParser() *MockQueryParser {
	return p.query
}

// GetMockPostQueryParser returns the underlying mock post parser for test assertions.
func (p *MockProvider) GetMockPostQueryParser() *MockPostQueryParser {
	return p.posts
}
