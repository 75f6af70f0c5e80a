// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"slices"
)

// ValidateSignal validates a Signal according to domain rules.
//
// Validation rules:
//   - Type must be a known SignalType
//   - Density must be a known Density
//   - Frequency must be at least 1
//   - Confidence must be within 0-100
//
// The scoring engine itself tolerates invalid signals; validation happens
// at the boundary where reference data enters the system.
func ValidateSignal(signal *Signal) error {
	if signal == nil {
		return fmt.Errorf("%w: signal is nil", ErrInvalidSignal)
	}
	if err := ValidateSignalType(signal.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignal, err)
	}
	if err := ValidateDensity(signal.Density); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignal, err)
	}
	if signal.Frequency < 1 {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidSignal, ErrInvalidFrequency, signal.Frequency)
	}
	if signal.Confidence < 0 || signal.Confidence > 100 {
		return fmt.Errorf("%w: %w (got %g)", ErrInvalidSignal, ErrInvalidConfidence, signal.Confidence)
	}
	return nil
}

// ValidatePost validates a Post and all of its signals.
//
// NOT validated (computed by ranking):
//   - ScoreBreakdown
//   - CompositeScore
func ValidatePost(post *Post) error {
	if post == nil {
		return fmt.Errorf("%w: post is nil", ErrInvalidPost)
	}
	if post.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPost, ErrEmptyID)
	}
	if post.CreatorID == "" {
		return fmt.Errorf("%w %s: creator %w", ErrInvalidPost, post.ID, ErrEmptyID)
	}
	if err := ValidateContentType(post.ContentType); err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidPost, post.ID, err)
	}
	s := post.Stats
	if s.Views < 0 || s.Likes < 0 || s.Comments < 0 || s.Shares < 0 {
		return fmt.Errorf("%w %s: stats %w", ErrInvalidPost, post.ID, ErrNegativeMetric)
	}
	for i := range post.Signals {
		if err := ValidateSignal(&post.Signals[i]); err != nil {
			return fmt.Errorf("%w %s: signal %d: %w", ErrInvalidPost, post.ID, i, err)
		}
	}
	return nil
}

// ValidateCreator validates a Creator according to domain rules.
func ValidateCreator(creator *Creator) error {
	if creator == nil {
		return fmt.Errorf("%w: creator is nil", ErrInvalidCreator)
	}
	if creator.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCreator, ErrEmptyID)
	}
	if creator.Name == "" {
		return fmt.Errorf("%w %s: %w", ErrInvalidCreator, creator.ID, ErrEmptyName)
	}
	if creator.Followers < 0 || creator.EngagementRate < 0 {
		return fmt.Errorf("%w %s: %w", ErrInvalidCreator, creator.ID, ErrNegativeMetric)
	}
	return nil
}

// ValidateSignalType validates that a SignalType has a known value.
func ValidateSignalType(t SignalType) error {
	if !slices.Contains(SignalTypes, t) {
		return fmt.Errorf("%w: %q", ErrInvalidSignalType, t)
	}
	return nil
}

// ValidateDensity validates that a Density has a known value.
func ValidateDensity(d Density) error {
	switch d {
	case DensityProminent, DensityModerate, DensityPassing:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidDensity, d)
}

// ValidateContentType validates that a ContentType has a known value.
func ValidateContentType(t ContentType) error {
	if !slices.Contains(ContentTypes, t) {
		return fmt.Errorf("%w: %q", ErrInvalidContentType, t)
	}
	return nil
}

// ValidateOperator validates that an Operator has a known value.
func ValidateOperator(op Operator) error {
	switch op {
	case OperatorRoot, OperatorAnd, OperatorOr, OperatorNot:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOperator, op)
}

// IsValidSortKey reports whether a SortKey has a known value.
func IsValidSortKey(k SortKey) bool {
	switch k {
	case SortComposite, SortSignals, SortEngagement, SortRecency:
		return true
	}
	return false
}
