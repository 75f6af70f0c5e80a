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


// Package session ties the query parsers to the engines.
//
// A Session holds one creator-discovery conversation. Each submitted query
// is parsed into a QueryNode and appended to a linear logic chain; Results
// evaluates the chain over the roster with the logic package. A parser
// failure never loses a query: the node falls back to a single topic made
// of the raw input.
//
// A PostSearch answers free-text searches over one creator's posts. Posts
// are ranked as a whole collection first, so normalized scores do not
// change with the filter, then filtered and optionally re-sorted.
package session
