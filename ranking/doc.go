// Package ranking scores a collection of posts, normalizes the scores
// against the collection's maximum and orders the posts for display.
//
// RankPosts is the synchronous form. Ranker fans the per-post scoring out
// over a worker pool and finishes with the same normalize and sort steps.
package ranking
