package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/betterscore/scoreboard-service/internal/metrics"
)

type tickCounter struct {
	count atomic.Int32
	ticks chan struct{}
	// stopAt ends the run once count reaches it; 0 never stops.
	stopAt int32
}

func newTickCounter() *tickCounter {
	return &tickCounter{ticks: make(chan struct{}, 16)}
}

func (tc *tickCounter) tick() bool {
	n := tc.count.Add(1)
	tc.ticks <- struct{}{}
	return tc.stopAt == 0 || n < tc.stopAt
}

func advance(t *testing.T, fc *clockwork.FakeClock, tc *tickCounter) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker never registered: %v", err)
	}
	fc.Advance(time.Second)
	select {
	case <-tc.ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
	}
}

// advanceUntilTick keeps moving the fake clock forward until a tick lands.
// A freshly restarted ticker can miss the first Advance.
func advanceUntilTick(t *testing.T, fc *clockwork.FakeClock, tc *tickCounter) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker never registered: %v", err)
	}
	for i := 0; i < 20; i++ {
		fc.Advance(time.Second)
		select {
		case <-tc.ticks:
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
	t.Fatal("timed out waiting for tick")
}

func waitForNoTickers(t *testing.T, fc *clockwork.FakeClock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, 0); err != nil {
		t.Fatalf("ticker never released: %v", err)
	}
}

func assertNoTick(t *testing.T, tc *tickCounter) {
	t.Helper()
	select {
	case <-tc.ticks:
		t.Fatal("unexpected tick")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClockTicksWhileRunning(t *testing.T) {
	fc := clockwork.NewFakeClock()
	tc := newTickCounter()
	rec := metrics.NewRecorder()
	c := New(tc.tick, WithClock(fc), WithRecorder(rec))
	defer c.Close()

	if !c.Start() {
		t.Fatalf("expected clock to start")
	}
	for i := 0; i < 3; i++ {
		advance(t, fc, tc)
	}
	if got := tc.count.Load(); got != 3 {
		t.Fatalf("expected 3 ticks, got %d", got)
	}
	if got := rec.Snapshot().Ticks; got != 3 {
		t.Fatalf("expected 3 recorded ticks, got %d", got)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	fc := clockwork.NewFakeClock()
	tc := newTickCounter()
	c := New(tc.tick, WithClock(fc))
	defer c.Close()

	c.Start()
	if !c.Start() {
		t.Fatalf("expected second start to report running")
	}
	advance(t, fc, tc)
	assertNoTick(t, tc)
	if got := tc.count.Load(); got != 1 {
		t.Fatalf("expected a single ticking loop, got %d ticks", got)
	}
}

func TestStopPreventsFurtherTicks(t *testing.T) {
	fc := clockwork.NewFakeClock()
	tc := newTickCounter()
	c := New(tc.tick, WithClock(fc))
	defer c.Close()

	c.Start()
	advance(t, fc, tc)

	if !c.Stop() {
		t.Fatalf("expected stop to report a running clock")
	}
	if c.Stop() {
		t.Fatalf("expected second stop to be a no-op")
	}
	if c.Running() {
		t.Fatalf("expected clock stopped")
	}

	fc.Advance(5 * time.Second)
	assertNoTick(t, tc)
	if got := tc.count.Load(); got != 1 {
		t.Fatalf("expected no ticks after stop, got %d", got)
	}
}

func TestRestartAfterStop(t *testing.T) {
	fc := clockwork.NewFakeClock()
	tc := newTickCounter()
	c := New(tc.tick, WithClock(fc))
	defer c.Close()

	c.Start()
	advance(t, fc, tc)
	c.Stop()
	waitForNoTickers(t, fc)

	c.Start()
	advanceUntilTick(t, fc, tc)
	if got := tc.count.Load(); got < 2 {
		t.Fatalf("expected 2 ticks across runs, got %d", got)
	}
}

func TestTickReturningFalseStopsClock(t *testing.T) {
	fc := clockwork.NewFakeClock()
	tc := newTickCounter()
	tc.stopAt = 2

	var mu sync.Mutex
	var changes []bool
	c := New(tc.tick, WithClock(fc), WithOnChange(func(running bool) {
		mu.Lock()
		changes = append(changes, running)
		mu.Unlock()
	}))
	defer c.Close()

	c.Start()
	advance(t, fc, tc)
	advance(t, fc, tc)

	if c.Running() {
		t.Fatalf("expected clock to stop itself")
	}
	waitForNoTickers(t, fc)
	fc.Advance(time.Second)
	assertNoTick(t, tc)

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Fatalf("expected [true false] transitions, got %v", changes)
	}
}

func TestCloseRefusesStart(t *testing.T) {
	fc := clockwork.NewFakeClock()
	tc := newTickCounter()
	c := New(tc.tick, WithClock(fc))

	c.Start()
	c.Close()
	if c.Running() {
		t.Fatalf("expected clock stopped after close")
	}
	if c.Start() {
		t.Fatalf("expected closed clock to refuse start")
	}
	waitForNoTickers(t, fc)
}

func TestNewDefaults(t *testing.T) {
	c := New(nil, WithInterval(0), WithClock(nil))
	if c.interval != defaultInterval {
		t.Fatalf("expected default interval, got %s", c.interval)
	}
	if c.clk == nil {
		t.Fatalf("expected real clock by default")
	}
	if c.Running() {
		t.Fatalf("expected new clock stopped")
	}
}
