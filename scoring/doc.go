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

// Package scoring converts a post's detected signals into a score breakdown.
//
// Each signal earns points from a fixed base table, scaled by a
// diminishing-returns frequency multiplier and a density multiplier:
//   - caption 100, audio 75, visual 50, personal note 0
//   - frequency adds +0.15 at 2 and 3, +0.10 at 4 and 5, +0.05 per unit beyond 5
//   - prominent 1.2, moderate 1.0, passing 0.7
//
// Posts whose evidence spans several modalities receive a reinforcement
// bonus. Scores are absolute; normalization to 0-100 happens in the
// ranking package because it needs the collection-wide maximum.
package scoring
