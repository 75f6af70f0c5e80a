// Package filter narrows a post collection by a PostFilterState.
//
// Every dimension of the state is optional and the dimensions combine as a
// conjunction. Malformed ranges, such as a dateTo before dateFrom or a
// negative threshold, match nothing instead of failing.
package filter
