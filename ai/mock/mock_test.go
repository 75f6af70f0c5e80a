package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ai.QueryParser     = (*MockQueryParser)(nil)
	_ ai.PostQueryParser = (*MockPostQueryParser)(nil)
	_ ai.AIProvider      = (*MockProvider)(nil)
)

func TestMockQueryParser_Default(t *testing.T) {
	parser := NewMockQueryParser()
	ctx := context.Background()

	tests := []struct {
		input   string
		isFirst bool
		want    core.Operator
	}{
		{"coffee creators", true, core.OperatorRoot},
		{"only women", false, core.OperatorAnd},
		{"also bakers", false, core.OperatorOr},
		{"Except runners", false, core.OperatorNot},
		{"fitness", false, core.OperatorAnd},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, err := parser.ParseQuery(ctx, tt.input, tt.isFirst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Operator)
			assert.Equal(t, tt.input, parsed.Description)
			assert.Equal(t, []string{tt.input}, parsed.Filters.Topics)
		})
	}

	assert.Equal(t, len(tests), parser.CallCount())
	assert.Equal(t, "coffee creators", parser.Inputs()[0])
}

func TestMockQueryParser_CustomFuncAndReset(t *testing.T) {
	boom := errors.New("model unavailable")
	parser := NewMockQueryParser().WithParseQueryFunc(func(context.Context, string, bool) (*ai.ParsedQuery, error) {
		return nil, boom
	})

	_, err := parser.ParseQuery(context.Background(), "coffee", true)
	assert.ErrorIs(t, err, boom)

	parser.Reset()
	assert.Zero(t, parser.CallCount())
	assert.Empty(t, parser.Inputs())

	parsed, err := parser.ParseQuery(context.Background(), "coffee", true)
	require.NoError(t, err)
	assert.Equal(t, core.OperatorRoot, parsed.Operator)
}

func TestMockPostQueryParser(t *testing.T) {
	parser := NewMockPostQueryParser()

	parsed, err := parser.ParsePostQuery(context.Background(), "  nike ")
	require.NoError(t, err)
	assert.Equal(t, "nike", parsed.Filters.SearchTerm)
	assert.Empty(t, parsed.SortBy)

	parser.WithParsePostQueryFunc(func(context.Context, string) (*ai.ParsedPostQuery, error) {
		return &ai.ParsedPostQuery{SortBy: core.SortRecency}, nil
	})
	parsed, err = parser.ParsePostQuery(context.Background(), "latest")
	require.NoError(t, err)
	assert.Equal(t, core.SortRecency, parsed.SortBy)
	assert.Equal(t, 2, parser.CallCount())
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider().(*MockProvider)

	_, err := provider.QueryParser().ParseQuery(context.Background(), "coffee", true)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.GetMockQueryParser().CallCount())
	assert.Zero(t, provider.GetMockPostQueryParser().CallCount())

	require.NoError(t, provider.Close())
	assert.True(t, provider.Closed())

	query := NewMockQueryParser()
	custom := NewMockProviderWithServices(query, NewMockPostQueryParser()).(*MockProvider)
	assert.Same(t, query, custom.GetMockQueryParser())
}
