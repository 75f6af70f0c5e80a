package ranking

import "errors"

var (
	// ErrRankerReleased is returned when Rank is called after Release.
	ErrRankerReleased = errors.New("ranker released")

	// ErrScoringFailed is returned when a scoring task cannot be scheduled.
	ErrScoringFailed = errors.New("scoring task failed")
)
