// Package memory provides in-memory implementations of the index ports.
//
// Matching mirrors the keyword service: a term matches a field when some word
// of the field starts with the term, compared case-insensitively, and every
// term of a query must match. Behavior can be overridden per call through the
// Func fields, which tests use to inject failures.
package memory
