package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// WaitForTickers blocks until n tickers or timers are registered on fc.
func WaitForTickers(t *testing.T, fc *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, n); err != nil {
		t.Fatalf("timed out waiting for %d tickers: %v", n, err)
	}
}

// AdvanceSeconds moves fc forward one second at a time, waiting for a live
// ticker before each step and calling after (if set) once per step.
func AdvanceSeconds(t *testing.T, fc *clockwork.FakeClock, seconds int, after func()) {
	t.Helper()
	for i := 0; i < seconds; i++ {
		WaitForTickers(t, fc, 1)
		fc.Advance(time.Second)
		if after != nil {
			after()
		}
	}
}
