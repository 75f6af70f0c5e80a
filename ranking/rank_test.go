package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(id string, signals ...core.Signal) core.Post {
	return core.Post{ID: id, CreatorID: "c1", ContentType: core.ContentReel, Signals: signals}
}

func caption(freq int) core.Signal {
	return core.Signal{Type: core.SignalCaption, Frequency: freq, Density: core.DensityModerate}
}

func visual(freq int) core.Signal {
	return core.Signal{Type: core.SignalVisual, Frequency: freq, Density: core.DensityModerate}
}

func ids(posts []core.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestRankPosts_Empty(t *testing.T) {
	ranked := RankPosts(nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankPosts_OrderAndNormalization(t *testing.T) {
	posts := []core.Post{
		post("low", visual(1)),   // 50
		post("high", caption(5)), // 150
		post("mid", caption(1)),  // 100
		post("none"),             // 0
	}

	ranked := RankPosts(posts)

	require.Len(t, ranked, 4)
	assert.Equal(t, []string{"high", "mid", "low", "none"}, ids(ranked))
	assert.Equal(t, 100, ranked[0].ScoreBreakdown.NormalizedScore)
	assert.Equal(t, 67, ranked[1].ScoreBreakdown.NormalizedScore)
	assert.Equal(t, 33, ranked[2].ScoreBreakdown.NormalizedScore)
	assert.Equal(t, 0, ranked[3].ScoreBreakdown.NormalizedScore)
	assert.InDelta(t, 150, ranked[0].CompositeScore, 1e-9)
}

func TestRankPosts_DoesNotMutateInput(t *testing.T) {
	posts := []core.Post{post("a", visual(1)), post("b", caption(1))}

	_ = RankPosts(posts)

	assert.Equal(t, "a", posts[0].ID)
	assert.Zero(t, posts[0].CompositeScore)
	assert.Zero(t, posts[1].ScoreBreakdown.SignalCount)
}

func TestRankPosts_Stable(t *testing.T) {
	posts := []core.Post{
		post("first", caption(2)),
		post("top", caption(5)),
		post("second", caption(2)),
		post("third", caption(2)),
	}

	ranked := RankPosts(posts)

	assert.Equal(t, []string{"top", "first", "second", "third"}, ids(ranked))
}

func TestRankPosts_AllZeroUsesFloor(t *testing.T) {
	posts := []core.Post{
		post("a"),
		post("b", core.Signal{Type: core.SignalPersonalNote, Frequency: 1, Density: core.DensityModerate}),
	}

	ranked := RankPosts(posts)

	for _, p := range ranked {
		assert.Zero(t, p.ScoreBreakdown.NormalizedScore)
	}
	assert.Equal(t, []string{"a", "b"}, ids(ranked))
}

func TestRankPosts_TiedMaximum(t *testing.T) {
	ranked := RankPosts([]core.Post{post("a", caption(1)), post("b", caption(1)), post("c", visual(1))})

	assert.Equal(t, 100, ranked[0].ScoreBreakdown.NormalizedScore)
	assert.Equal(t, 100, ranked[1].ScoreBreakdown.NormalizedScore)
	assert.Equal(t, 50, ranked[2].ScoreBreakdown.NormalizedScore)
}

func TestSortPosts(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	posts := []core.Post{
		{
			ID:             "a",
			CompositeScore: 100,
			PostedAt:       now.Add(-48 * time.Hour),
			Stats:          core.PostStats{Likes: 10},
			ScoreBreakdown: core.ScoreBreakdown{SignalCount: 1},
		},
		{
			ID:             "b",
			CompositeScore: 300,
			PostedAt:       now.Add(-72 * time.Hour),
			Stats:          core.PostStats{Likes: 5, Comments: 1},
			ScoreBreakdown: core.ScoreBreakdown{SignalCount: 3},
		},
		{
			ID:             "c",
			CompositeScore: 200,
			PostedAt:       now,
			Stats:          core.PostStats{Likes: 50, Shares: 20},
			ScoreBreakdown: core.ScoreBreakdown{SignalCount: 3},
		},
	}

	tests := []struct {
		key  core.SortKey
		want []string
	}{
		{core.SortComposite, []string{"b", "c", "a"}},
		{core.SortSignals, []string{"b", "c", "a"}},
		{core.SortEngagement, []string{"c", "a", "b"}},
		{core.SortRecency, []string{"c", "a", "b"}},
		{"", []string{"a", "b", "c"}},
		{"bogus", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortPosts(posts, tt.key)))
		})
	}
	assert.Equal(t, "a", posts[0].ID, "input must not be reordered")
}

func TestSortPosts_SignalsByDistinctTypes(t *testing.T) {
	ranked := RankPosts([]core.Post{
		post("repeat", caption(1), caption(1), caption(1), caption(1)),
		post("mixed", caption(1), visual(1)),
	})
	require.Equal(t, []string{"repeat", "mixed"}, ids(ranked))

	sorted := SortPosts(ranked, core.SortSignals)

	assert.Equal(t, []string{"mixed", "repeat"}, ids(sorted))
	assert.Equal(t, 2, sorted[0].ScoreBreakdown.SignalCount)
	assert.Equal(t, 1, sorted[1].ScoreBreakdown.SignalCount)
}

func TestRanker_MatchesRankPosts(t *testing.T) {
	r, err := NewRanker(WithPoolSize(4))
	require.NoError(t, err)
	defer r.Release()

	var posts []core.Post
	for i := 0; i < 50; i++ {
		posts = append(posts, post(string(rune('A'+i%26))+string(rune('a'+i/26)), caption(i%7+1), visual(i%3+1)))
	}

	got, err := r.Rank(context.Background(), posts)
	require.NoError(t, err)
	assert.Equal(t, RankPosts(posts), got)
}

func TestRanker_CancelledContext(t *testing.T) {
	r, err := NewRanker()
	require.NoError(t, err)
	defer r.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Rank(ctx, []core.Post{post("a", caption(1))})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRanker_Released(t *testing.T) {
	r, err := NewRanker(WithPoolSize(0))
	require.NoError(t, err)
	r.Release()

	_, err = r.Rank(context.Background(), []core.Post{post("a")})
	assert.ErrorIs(t, err, ErrRankerReleased)
}

func TestRanker_Empty(t *testing.T) {
	r, err := NewRanker(WithLogger(nil))
	require.NoError(t, err)
	defer r.Release()

	got, err := r.Rank(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
