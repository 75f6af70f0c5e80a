package openai

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"
)

func TestPostQueryParser_ParsePostQuery(t *testing.T) {
	reply := `{
  "filters": {
    "contentTypes": ["reels", "Story", "Carousel", "Reel"],
    "signalTypes": ["AUDIO", "smell"],
    "minViews": 100000,
    "minLikes": null,
    "dateFrom": "2025-03-01",
    "dateTo": "2025-03-31",
    "searchTerm": " nike "
  },
  "sortBy": "Engagement"
}`
	parser, err := NewPostQueryParserWithModel(fake.NewFakeLLM([]string{reply}), ai.DefaultConfig())
	require.NoError(t, err)

	parsed, err := parser.ParsePostQuery(context.Background(), "most engaged nike reels in march")
	require.NoError(t, err)

	f := parsed.Filters
	assert.Equal(t, []core.ContentType{core.ContentReel, core.ContentStory}, f.ContentTypes)
	assert.Equal(t, []core.SignalType{core.SignalAudio}, f.SignalTypes)
	require.NotNil(t, f.MinViews)
	assert.Equal(t, int64(100000), *f.MinViews)
	assert.Nil(t, f.MinLikes)
	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), *f.DateTo)
	assert.Equal(t, "nike", f.SearchTerm)
	assert.Equal(t, core.SortEngagement, parsed.SortBy)
}

func TestPostQueryParser_DropsUnknownValues(t *testing.T) {
	reply := `{"filters": {"dateFrom": "last tuesday", "dateTo": "2025-04-02T10:00:00Z"}, "sortBy": "popularity"}`
	parser, err := NewPostQueryParserWithModel(fake.NewFakeLLM([]string{reply}), ai.DefaultConfig())
	require.NoError(t, err)

	parsed, err := parser.ParsePostQuery(context.Background(), "since last tuesday")
	require.NoError(t, err)

	assert.Empty(t, parsed.SortBy)
	assert.Nil(t, parsed.Filters.DateFrom)
	require.NotNil(t, parsed.Filters.DateTo)
	assert.Equal(t, time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC), parsed.Filters.DateTo.UTC())
}

func TestPostQueryParser_EmptyReply(t *testing.T) {
	parser, err := NewPostQueryParserWithModel(fake.NewFakeLLM([]string{`{"filters": null, "sortBy": null}`}), ai.DefaultConfig())
	require.NoError(t, err)

	parsed, err := parser.ParsePostQuery(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, parsed.Filters.IsEmpty())
	assert.Empty(t, parsed.SortBy)
}

func TestPostQueryParser_PromptCarriesToday(t *testing.T) {
	model := &scriptedModel{replies: []string{`{}`}}
	parser := newPostQueryParserWithModel(model, ai.DefaultConfig())
	parser.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	_, err := parser.ParsePostQuery(context.Background(), "posts from last month")
	require.NoError(t, err)

	prompt := model.humanPrompt(0)
	assert.Contains(t, prompt, "Today is 2025-06-15.")
	assert.Contains(t, prompt, `"posts from last month"`)
}

func TestParseContentType(t *testing.T) {
	tests := []struct {
		in   string
		want core.ContentType
		ok   bool
	}{
		{"Reel", core.ContentReel, true},
		{"reels", core.ContentReel, true},
		{"stories", core.ContentStory, true},
		{"VIDEO", core.ContentVideo, true},
		{"paid", core.ContentPaid, true},
		{"carousel", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseContentType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
