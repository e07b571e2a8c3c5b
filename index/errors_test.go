package index

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "rate limited", err: RateLimited("429"), target: ErrRateLimited},
		{name: "network", err: Network("dial", context.DeadlineExceeded), target: ErrNetwork},
		{name: "bad query", err: BadQuery("syntax"), target: ErrBadQuery},
		{name: "wrapped", err: fmt.Errorf("search: %w", BadQuery("syntax")), target: ErrBadQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
		})
	}

	t.Run("kinds do not cross-match", func(t *testing.T) {
		assert.False(t, errors.Is(RateLimited("429"), ErrNetwork))
		assert.False(t, errors.Is(BadQuery("x"), ErrRateLimited))
	})

	t.Run("network unwraps to cause", func(t *testing.T) {
		assert.ErrorIs(t, Network("dial", context.DeadlineExceeded), context.DeadlineExceeded)
	})
}

func TestSearchError_Error(t *testing.T) {
	assert.Equal(t, "bad_query: unknown field", BadQuery("unknown field").Error())
	assert.Equal(t, "network: request failed: boom", Network("request failed", errors.New("boom")).Error())

	var se *SearchError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", RateLimited("slow down")), &se))
	assert.Equal(t, KindRateLimited, se.Kind)
}
