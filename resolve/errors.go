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


package resolve

import "errors"

var (
	// ErrTaxonomyIndexRequired is returned when a taxonomy index is not provided.
	ErrTaxonomyIndexRequired = errors.New("taxonomy index required")

	// ErrCorpusIndexRequired is returned when a corpus index is not provided.
	ErrCorpusIndexRequired = errors.New("corpus index required")

	// ErrInvalidBudget is returned for a negative call budget.
	ErrInvalidBudget = errors.New("call budget cannot be negative")

	// ErrInvalidThreshold is returned for a relevance threshold outside [0,1].
	ErrInvalidThreshold = errors.New("relevance threshold must be between 0 and 1")

	// ErrFieldsRequired is returned when no search fields are configured.
	ErrFieldsRequired = errors.New("at least one search field required")

	// ErrInvalidMaxBridgeCodes is returned when fewer than one bridge code is allowed.
	ErrInvalidMaxBridgeCodes = errors.New("max bridge codes must be at least 1")
)
