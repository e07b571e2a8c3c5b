// Package ingest loads bulk downloads of the taxonomy and the corpus into
// the offline mirror.
//
// Each file is decoded by its own task on a worker pool. Records are
// validated, written in batches with retry and backoff, and a checkpoint per
// file lets an interrupted load resume where it stopped.
package ingest
