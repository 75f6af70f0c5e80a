package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// MockQueryParser is a test double for ai.QueryParser.
// It allows custom behavior injection via function fields.
type MockQueryParser struct {
	// ParseQueryFunc is called by ParseQuery if set.
	// If nil, uses a keyword-driven default.
	ParseQueryFunc func(ctx context.Context, input string, isFirst bool) (*ai.ParsedQuery, error)

	mu        sync.Mutex
	callCount int
	inputs    []string
}

// NewMockQueryParser creates a mock query parser with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockQueryParser() *MockQueryParser {
	return &MockQueryParser{}
}

// WithParseQueryFunc sets custom parse behavior and returns the mock for chaining.
func (m *MockQueryParser) WithParseQueryFunc(fn func(ctx context.Context, input string, isFirst bool) (*ai.ParsedQuery, error)) *MockQueryParser {
	m.ParseQueryFunc = fn
	return m
}

// ParseQuery returns a parsed query for input.
// Default behavior: ROOT for the first query; afterwards the leading word
// picks the operator ("also"/"add"/"include" OR, "except"/"no"/"remove"
// NOT, anything else AND). The whole input becomes the only topic.
func (m *MockQueryParser) ParseQuery(ctx context.Context, input string, isFirst bool) (*ai.ParsedQuery, error) {
	m.mu.Lock()
	m.callCount++
	m.inputs = append(m.inputs, input)
	fn := m.ParseQueryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, input, isFirst)
	}

	op := core.OperatorRoot
	if !isFirst {
		op = operatorFor(input)
	}
	return &ai.ParsedQuery{
		Operator:    op,
		Description: input,
		Filters:     core.FilterCriteria{Topics: []string{input}},
	}, nil
}

func operatorFor(input string) core.Operator {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return core.OperatorAnd
	}
	switch fields[0] {
	case "also", "add", "include":
		return core.OperatorOr
	case "except", "no", "remove", "without":
		return core.OperatorNot
	}
	return core.OperatorAnd
}

// CallCount returns the number of times ParseQuery was called.
func (m *MockQueryParser) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Inputs returns the inputs ParseQuery received, in call order.
func (m *MockQueryParser) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.inputs...)
}

// Reset clears the call history and custom functions.
func (m *MockQueryParser) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.inputs = nil
	m.ParseQueryFunc = nil
}
