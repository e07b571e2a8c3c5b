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


// Package resolve turns informal queries into taxonomy entries using only
// keyword searches.
//
// The Resolver type implements a multi-stage algorithm:
//   - Direct lookup when the query is a taxonomy code literal
//   - Synonym expansion of informal terms into formal vocabulary
//   - Combinatorial broadening over term subsets, largest and contiguous first,
//     dispatched field by field under a fixed call budget
//   - Coverage scoring of every non-empty result against the original terms
//   - A bridge through the secondary corpus when direct search finds nothing
//
// Queries are issued strictly one after another. Every call is recorded on the
// returned Outcome so callers can show or replay the exact search trail.
package resolve
