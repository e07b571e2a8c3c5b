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
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/taxonomist/core"
)

// MaxRetryDelay caps the wait between two attempts of a batch write.
const MaxRetryDelay = 5 * time.Second

// writePolicy retries batch writes with exponential backoff.
type writePolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// delay returns the wait after the given failed attempt, starting at 1.
func (p writePolicy) delay(attempt int) time.Duration {
	d := p.baseDelay << (attempt - 1)
	if d <= 0 || d > MaxRetryDelay {
		return MaxRetryDelay
	}
	return d
}

// write runs op until it succeeds, the attempts run out or ctx ends.
// Records rejected by validation fail the same way on every attempt and
// are returned without retrying.
func (p writePolicy) write(ctx context.Context, source string, op func() error) error {
	if p.maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			if attempt > 1 {
				p.logger.Debug("batch stored after retry", "source", source, "attempt", attempt)
			}
			return nil
		}
		if permanent(lastErr) {
			return lastErr
		}

		p.logger.Warn("batch write failed", "source", source, "attempt", attempt, "maxAttempts", p.maxAttempts, "err", lastErr)
		if attempt == p.maxAttempts {
			break
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

func permanent(err error) bool {
	return errors.Is(err, core.ErrInvalidTaxonomyEntry) || errors.Is(err, core.ErrInvalidCorpusRecord)
}
