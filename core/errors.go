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
	// ErrInvalidTaxonomyEntry indicates a TaxonomyEntry failed validation.
	ErrInvalidTaxonomyEntry = errors.New("invalid taxonomy entry")

	// ErrInvalidCorpusRecord indicates a CorpusRecord failed validation.
	ErrInvalidCorpusRecord = errors.New("invalid corpus record")

	// ErrEmptyCode indicates the taxonomy code is empty.
	ErrEmptyCode = errors.New("code cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")
)
