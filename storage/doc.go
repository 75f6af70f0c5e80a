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


// Package storage provides the storage abstraction layer for Scout.
//
// This package defines the catalog interfaces that decouple the persistent
// roster and post collections from the engines and the session layer.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep callers independent of
// the backend:
//
//	catalog, err := badger.NewCatalogRepository(backend)  // returns storage.CatalogRepository
//
// Internal package constructors may return concrete types since they're
// only used within the implementation package.
//
// # Architecture
//
//   - Repository: transactions and lifecycle
//   - CreatorStore: the roster, in insertion order, with a topic index
//   - PostStore: each creator's posts, in insertion order
//   - CatalogRepository: all of the above
//
// Records are encoded with mus-go (see core.CreatorMUS and core.PostMUS).
// Scores are computed by the ranking package on demand and never stored.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	catalog, err := badger.NewCatalogRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer catalog.Close()
//
// Use in tests with in-memory storage:
//
//	catalog, backend, err := badger.NewMemoryCatalog()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
