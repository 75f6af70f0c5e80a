package filter

import (
	"slices"
	"strings"

	"github.com/poiesic/scout/core"
)

// Predicate reports whether a post satisfies one filter dimension.
type Predicate func(post *core.Post) bool

// FilterPosts returns the posts satisfying every predicate set in f, in
// input order. An empty state returns all posts.
func FilterPosts(posts []core.Post, f core.PostFilterState) []core.Post {
	preds := Predicates(f)
	out := make([]core.Post, 0, len(posts))
	for i := range posts {
		if Match(&posts[i], preds) {
			out = append(out, posts[i])
		}
	}
	return out
}

// Match reports whether post satisfies every predicate.
func Match(post *core.Post, preds []Predicate) bool {
	for _, p := range preds {
		if !p(post) {
			return false
		}
	}
	return true
}

// Predicates builds the predicates for every dimension set in f.
func Predicates(f core.PostFilterState) []Predicate {
	var preds []Predicate

	if len(f.ContentTypes) > 0 {
		preds = append(preds, ContentTypeIn(f.ContentTypes))
	}
	if len(f.SignalTypes) > 0 {
		preds = append(preds, HasSignalType(f.SignalTypes))
	}
	if f.MinViews != nil {
		preds = append(preds, MinViews(*f.MinViews))
	}
	if f.MinLikes != nil {
		preds = append(preds, MinLikes(*f.MinLikes))
	}
	if f.DateFrom != nil || f.DateTo != nil {
		preds = append(preds, PostedBetween(f))
	}
	if f.SearchTerm != "" {
		preds = append(preds, Contains(f.SearchTerm))
	}

	return preds
}

// ContentTypeIn matches posts whose content type is one of types.
func ContentTypeIn(types []core.ContentType) Predicate {
	return func(post *core.Post) bool {
		return slices.Contains(types, post.ContentType)
	}
}

// HasSignalType matches posts with at least one signal of any of types.
func HasSignalType(types []core.SignalType) Predicate {
	return func(post *core.Post) bool {
		for _, s := range post.Signals {
			if slices.Contains(types, s.Type) {
				return true
			}
		}
		return false
	}
}

// MinViews matches posts with at least threshold views.
// A negative threshold matches nothing.
func MinViews(threshold int64) Predicate {
	return func(post *core.Post) bool {
		return threshold >= 0 && post.Stats.Views >= threshold
	}
}

// MinLikes matches posts with at least threshold likes.
// A negative threshold matches nothing.
func MinLikes(threshold int64) Predicate {
	return func(post *core.Post) bool {
		return threshold >= 0 && post.Stats.Likes >= threshold
	}
}

// PostedBetween matches posts whose PostedAt lies within the inclusive
// range given by f.DateFrom and f.DateTo. Either bound may be nil.
func PostedBetween(f core.PostFilterState) Predicate {
	from, to := f.DateFrom, f.DateTo
	return func(post *core.Post) bool {
		if from != nil && to != nil && to.Before(*from) {
			return false
		}
		if from != nil && post.PostedAt.Before(*from) {
			return false
		}
		if to != nil && post.PostedAt.After(*to) {
			return false
		}
		return true
	}
}

// Contains matches posts whose caption or any signal excerpt contains
// term, ignoring case.
func Contains(term string) Predicate {
	needle := strings.ToLower(term)
	return func(post *core.Post) bool {
		if strings.Contains(strings.ToLower(post.Caption), needle) {
			return true
		}
		for _, s := range post.Signals {
			if strings.Contains(strings.ToLower(s.Excerpt), needle) {
				return true
			}
		}
		return false
	}
}
