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


package index

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited indicates the search service throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork indicates the search service could not be reached.
	ErrNetwork = errors.New("network failure")

	// ErrBadQuery indicates the search service rejected the query.
	ErrBadQuery = errors.New("bad query")
)

// ErrorKind classifies a search failure.
type ErrorKind int

const (
	KindRateLimited ErrorKind = iota + 1
	KindNetwork
	KindBadQuery
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network"
	case KindBadQuery:
		return "bad_query"
	}
	return "unknown"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindRateLimited:
		return ErrRateLimited
	case KindNetwork:
		return ErrNetwork
	case KindBadQuery:
		return ErrBadQuery
	}
	return nil
}

// SearchError is returned by every index implementation.
type SearchError struct {
	Kind    ErrorKind
	Message string
	Err     error // Underlying cause, if any
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the sentinel error for the error's kind.
func (e *SearchError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// RateLimited builds a KindRateLimited error.
func RateLimited(message string) *SearchError {
	return &SearchError{Kind: KindRateLimited, Message: message}
}

// Network builds a KindNetwork error wrapping err.
func Network(message string, err error) *SearchError {
	return &SearchError{Kind: KindNetwork, Message: message, Err: err}
}

// BadQuery builds a KindBadQuery error.
func BadQuery(message string) *SearchError {
	return &SearchError{Kind: KindBadQuery, Message: message}
}
