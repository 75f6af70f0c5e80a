package ranking

import (
	"cmp"
	"math"
	"slices"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/scoring"
)

// minMaxScore is the floor for the collection maximum used in normalization.
const minMaxScore = 1.0

// RankPosts scores every post, normalizes the scores to 0-100 relative to
// the highest score in the collection and returns a new slice ordered by
// composite score, highest first. Posts with equal scores keep their input
// order. The input slice is not modified.
func RankPosts(posts []core.Post) []core.Post {
	ranked := make([]core.Post, len(posts))
	for i, p := range posts {
		ranked[i] = scorePost(p)
	}
	finish(ranked)
	return ranked
}

// scorePost returns a copy of p with its breakdown and composite score set.
func scorePost(p core.Post) core.Post {
	p.ScoreBreakdown = scoring.Score(p.Signals)
	p.CompositeScore = p.ScoreBreakdown.BaseTotal
	return p
}

// finish normalizes scored posts in place and stable-sorts them by
// composite score descending.
func finish(posts []core.Post) {
	maxScore := minMaxScore
	for _, p := range posts {
		maxScore = max(maxScore, p.CompositeScore)
	}
	for i := range posts {
		posts[i].ScoreBreakdown.NormalizedScore = int(math.Round(posts[i].CompositeScore / maxScore * 100))
	}
	slices.SortStableFunc(posts, byComposite)
}

// SortPosts returns a new slice of already ranked posts reordered by key.
// The sort is stable. An unknown or empty key keeps the input order.
func SortPosts(posts []core.Post, key core.SortKey) []core.Post {
	sorted := slices.Clone(posts)
	if sorted == nil {
		sorted = []core.Post{}
	}
	switch key {
	case core.SortComposite:
		slices.SortStableFunc(sorted, byComposite)
	case core.SortSignals:
		slices.SortStableFunc(sorted, func(a, b core.Post) int {
			if c := cmp.Compare(b.ScoreBreakdown.SignalCount, a.ScoreBreakdown.SignalCount); c != 0 {
				return c
			}
			return byComposite(a, b)
		})
	case core.SortEngagement:
		slices.SortStableFunc(sorted, func(a, b core.Post) int {
			return cmp.Compare(b.Stats.Engagement(), a.Stats.Engagement())
		})
	case core.SortRecency:
		slices.SortStableFunc(sorted, func(a, b core.Post) int {
			return b.PostedAt.Compare(a.PostedAt)
		})
	}
	return sorted
}

func byComposite(a, b core.Post) int {
	return cmp.Compare(b.CompositeScore, a.CompositeScore)
}
