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


// Package index defines the keyword search ports consumed by the resolver.
//
// Two collections are searched:
//   - The taxonomy: classification entries with a code, a formal name and a
//     definition. It supports field-restricted AND queries and lookup by code.
//   - The corpus: secondary records carrying a free-text name and the
//     taxonomy code they reference. It supports field-restricted AND queries.
//
// Implementations exist for the remote search service (package openfda),
// a local BadgerDB mirror (package badger) and in-memory fixtures (package
// memory).
//
// # Errors
//
// Every implementation reports failures as *SearchError, whose Kind is one of
// KindRateLimited, KindNetwork or KindBadQuery. Callers match them with
// errors.Is against ErrRateLimited, ErrNetwork and ErrBadQuery. A query that
// matches nothing is not an error: it returns an empty page.
package index
