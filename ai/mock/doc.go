// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.QueryParser,
// ai.PostQueryParser and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without a language model and give controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	parsed, err := mockProvider.QueryParser().ParseQuery(ctx, "coffee", true)
//
//	// Custom behavior injection
//	parser := mock.NewMockQueryParser().
//	    WithParseQueryFunc(func(ctx context.Context, input string, isFirst bool) (*ai.ParsedQuery, error) {
//	        return nil, errors.New("model unavailable")
//	    })
//
//	// Check call counts
//	count := parser.CallCount()
//
// # Default Behavior
//
//   - MockQueryParser: ROOT for the first query, then an operator chosen by
//     the leading word; the input becomes the single topic
//   - MockPostQueryParser: the input becomes the search term
//   - MockProvider: Aggregates both parsers
package mock
