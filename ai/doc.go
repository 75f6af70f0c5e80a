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

// Package ai provides abstractions for the language-model services used in Scout.
//
// The engines in scoring, ranking, filter and logic never see free text.
// This package defines the boundary that turns user input into the
// structured values they consume:
//
//   - QueryParser: free text to an operator, FilterCriteria and display filters
//   - PostQueryParser: free text to a PostFilterState and sort preference
//   - AIProvider: aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewQueryParser) return
// INTERFACE types. Mock constructors return CONCRETE types so tests can
// inject behavior and inspect calls.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	parsed, err := provider.QueryParser().ParseQuery(ctx, "coffee creators in NYC", true)
//
// Parsers may fail. Callers such as the session package fall back to a
// minimal single-topic query so the engines always receive valid input.
package ai
