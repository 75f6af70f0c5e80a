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

// Package logic evaluates an ordered sequence of query nodes against a
// creator roster.
//
// Evaluation is a single forward fold carrying one running base set:
//   - ROOT replaces the base set with the node's candidates
//   - AND narrows the base set to creators that are also candidates
//   - OR shows its candidates as a side branch and leaves the base set alone
//   - NOT removes its candidates from the base set and shows nothing itself
//
// Candidates come from a layered matcher. Explicit filters are hard
// constraints; free-text topics are scanned against fixed control-phrase
// tables to infer missing gender, location and platform filters, and the
// remaining words must match a creator's name, handle or topic tags.
package logic
