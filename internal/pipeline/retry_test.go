package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgallion1/bookparse/internal/registry"
)

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(registry.ErrFull) {
		t.Error("expected ErrFull to be retryable")
	}
	if !IsRetryable(fmt.Errorf("put: %w", registry.ErrFull)) {
		t.Error("expected wrapped ErrFull to be retryable")
	}
	if IsRetryable(errors.New("bad input")) {
		t.Error("expected plain error not to be retryable")
	}
	if IsRetryable(nil) {
		t.Error("expected nil not to be retryable")
	}
}

func TestBackoff_Bounds(t *testing.T) {
	for attempt := range 10 {
		base := time.Duration(1<<uint(attempt)) * 250 * time.Millisecond
		base = min(base, 5*time.Second)
		got := Backoff(attempt)
		if got < base || got >= base+base/2 {
			t.Errorf("attempt %d: %v outside [%v, %v)", attempt, got, base, base+base/2)
		}
	}
}
