package clock

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/betterscore/scoreboard-service/internal/logging"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

const defaultInterval = time.Second

// TickFunc advances the game by one tick. Returning false stops the clock.
type TickFunc func() bool

// Clock drives TickFunc on a fixed interval while running.
// At most one ticking goroutine is live at a time, and once Stop returns
// no further tick is delivered for the stopped run.
type Clock struct {
	clk      clockwork.Clock
	interval time.Duration
	tick     TickFunc
	onChange func(running bool)
	logger   *slog.Logger
	metrics  *metrics.Recorder

	// mu is held for the whole of each tick so Stop cannot interleave with one.
	mu      sync.Mutex
	running bool
	closed  bool
	gen     uint64
	stop    chan struct{}
	wg      sync.WaitGroup
}

// Option customizes a Clock.
type Option func(*Clock)

// WithClock swaps the time source; tests pass a clockwork.FakeClock.
func WithClock(clk clockwork.Clock) Option {
	return func(c *Clock) {
		if clk != nil {
			c.clk = clk
		}
	}
}

// WithInterval sets the tick period.
func WithInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the logger used for start/stop events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clock) { c.logger = logger }
}

// WithRecorder counts delivered ticks.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(c *Clock) { c.metrics = rec }
}

// WithOnChange registers fn to be called, under the clock lock, whenever the
// running flag flips. fn must not call back into the Clock.
func WithOnChange(fn func(running bool)) Option {
	return func(c *Clock) { c.onChange = fn }
}

// New constructs a stopped clock.
func New(tick TickFunc, opts ...Option) *Clock {
	c := &Clock{
		clk:      clockwork.NewRealClock(),
		interval: defaultInterval,
		tick:     tick,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins ticking. It is a no-op when already running or closed.
// The result reports whether the clock is running afterwards.
func (c *Clock) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.running {
		return true
	}

	c.running = true
	c.gen++
	c.stop = make(chan struct{})
	c.wg.Add(1)
	go c.run(c.gen, c.stop)

	c.notify(true)
	logging.Info(c.logger, "clock started", slog.Int64(logging.FieldDurationMS, c.interval.Milliseconds()))
	return true
}

// Stop halts ticking. It reports whether the clock was running.
func (c *Clock) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return false
	}
	c.halt()
	logging.Info(c.logger, "clock stopped")
	return true
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Close stops the clock for good and waits for the ticking goroutine to exit.
func (c *Clock) Close() {
	c.mu.Lock()
	c.closed = true
	if c.running {
		c.halt()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// halt requires c.mu.
func (c *Clock) halt() {
	c.running = false
	close(c.stop)
	c.stop = nil
	c.notify(false)
}

func (c *Clock) notify(running bool) {
	if c.onChange != nil {
		c.onChange(running)
	}
}

func (c *Clock) run(gen uint64, stop <-chan struct{}) {
	defer c.wg.Done()
	ticker := c.clk.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if !c.fire(gen) {
				return
			}
		}
	}
}

// fire delivers one tick for run gen and reports whether that run continues.
func (c *Clock) fire(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.gen != gen {
		return false
	}

	c.metrics.RecordTick()
	if c.tick == nil || c.tick() {
		return true
	}

	c.halt()
	logging.Info(c.logger, "clock expired")
	return false
}
