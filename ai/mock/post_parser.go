package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/scout/ai"
)

// MockPostQueryParser is a test double for ai.PostQueryParser.
type MockPostQueryParser struct {
	// ParsePostQueryFunc is called by ParsePostQuery if set.
	// If nil, the trimmed input becomes the search term.
	ParsePostQueryFunc func(ctx context.Context, input string) (*ai.ParsedPostQuery, error)

	mu        sync.Mutex
	callCount int
}

// NewMockPostQueryParser creates a mock post parser with default behavior.
func NewMockPostQueryParser() *MockPostQueryParser {
	return &MockPostQueryParser{}
}

// WithParsePostQueryFunc sets custom parse behavior and returns the mock for chaining.
func (m *MockPostQueryParser) WithParsePostQueryFunc(fn func(ctx context.Context, input string) (*ai.ParsedPostQuery, error)) *MockPostQueryParser {
	m.ParsePostQueryFunc = fn
	return m
}

// ParsePostQuery returns a parsed post query for input.
func (m *MockPostQueryParser) ParsePostQuery(ctx context.Context, input string) (*ai.ParsedPostQuery, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.ParsePostQueryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, input)
	}

	parsed := &ai.ParsedPostQuery{}
	parsed.Filters.SearchTerm = strings.TrimSpace(input)
	return parsed, nil
}

// CallCount returns the number of times ParsePostQuery was called.
func (m *MockPostQueryParser) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockPostQueryParser) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ParsePostQueryFunc = nil
}
