package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/bookparse/internal/registry"
)

// IsRetryable reports whether waiting may let the operation succeed. A full
// registry frees up as idle books expire or are disposed.
func IsRetryable(err error) bool {
	return errors.Is(err, registry.ErrFull)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 250 * time.Millisecond
	if base > 5*time.Second {
		base = 5 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 4
