package openai

import (
	"context"
	"testing"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"
)

func TestNewProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		provider, err := NewProvider(ai.DefaultConfig())
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.QueryParser())
		assert.NotNil(t, provider.PostQueryParser())
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewProvider(ai.NewConfig(ai.WithHost("")))
		assert.Error(t, err)
	})
}

func TestProvider_SharesModel(t *testing.T) {
	model := fake.NewFakeLLM([]string{
		`{"operator": "ROOT", "filters": {"topics": ["coffee"]}}`,
		`{"filters": {"searchTerm": "latte"}, "sortBy": "recency"}`,
	})
	provider, err := NewProviderWithModel(model, ai.DefaultConfig())
	require.NoError(t, err)
	defer provider.Close()

	parsed, err := provider.QueryParser().ParseQuery(context.Background(), "coffee", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee"}, parsed.Filters.Topics)

	posts, err := provider.PostQueryParser().ParsePostQuery(context.Background(), "latest latte posts")
	require.NoError(t, err)
	assert.Equal(t, "latte", posts.Filters.SearchTerm)
	assert.Equal(t, core.SortRecency, posts.SortBy)
}
