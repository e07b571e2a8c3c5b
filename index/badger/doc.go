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

// Package badger provides an offline mirror of the taxonomy and the corpus
// backed by BadgerDB.
//
// Both collections keep their records under a content ID and maintain a
// posting list per (field, word). A search scans the postings of each term
// by prefix and intersects the resulting ID sets, which gives the same
// AND-of-prefix-terms semantics as the remote service. Taxonomy entries are
// also indexed by code for Direct lookups.
//
// Use OpenBackend with inMemory set for tests, or NewMemoryIndexes.
package badger
