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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSignal indicates a Signal failed validation.
	ErrInvalidSignal = errors.New("invalid signal")

	// ErrInvalidPost indicates a Post failed validation.
	ErrInvalidPost = errors.New("invalid post")

	// ErrInvalidCreator indicates a Creator failed validation.
	ErrInvalidCreator = errors.New("invalid creator")

	// ErrInvalidOperator indicates an unknown query node Operator.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidSignalType indicates an unknown SignalType value.
	ErrInvalidSignalType = errors.New("invalid signal type")

	// ErrInvalidDensity indicates an unknown Density value.
	ErrInvalidDensity = errors.New("invalid density")

	// ErrInvalidContentType indicates an unknown ContentType value.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidFrequency indicates a signal frequency below one.
	ErrInvalidFrequency = errors.New("frequency must be at least 1")

	// ErrInvalidConfidence indicates a confidence outside 0-100.
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")

	// ErrEmptyID indicates a required identifier is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyName indicates the creator Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativeMetric indicates a negative follower, engagement or stats value.
	ErrNegativeMetric = errors.New("metric cannot be negative")
)

// Serialization errors
var (
	// ErrMalformedRecord indicates encoded record bytes could not be decoded.
	ErrMalformedRecord = errors.New("malformed record")
)
