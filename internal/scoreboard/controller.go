package scoreboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/betterscore/scoreboard-service/internal/clock"
	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/filesync"
	"github.com/betterscore/scoreboard-service/internal/logging"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

// Syncer mirrors state to the overlay files.
type Syncer interface {
	Sync(state game.State, fields ...filesync.Field) error
}

// Notifier receives every committed state. Publish is called while the
// controller is locked and must not block or call back into the controller.
type Notifier interface {
	Publish(state game.State)
}

// Result is the outcome of one operation. Sync failures never fail the
// operation; rejected payload fields are reported in Invalid.
type Result struct {
	State   game.State
	SyncErr error
	Invalid error
}

// Controller owns the single game state and serializes every change to it.
type Controller struct {
	rules     game.Rules
	files     Syncer
	clock     *clock.Clock
	logger    *slog.Logger
	metrics   *metrics.Recorder
	notifiers []Notifier

	// Lock order: clock lock first, then mu.
	mu    sync.Mutex
	state game.State
}

// Option customizes a Controller.
type Option func(*settings)

type settings struct {
	logger    *slog.Logger
	metrics   *metrics.Recorder
	notifiers []Notifier
	clockOpts []clock.Option
	initial   *game.State
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func WithRecorder(rec *metrics.Recorder) Option {
	return func(s *settings) { s.metrics = rec }
}

// WithNotifier adds a receiver of state changes.
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// WithClockOptions passes options through to the game clock.
func WithClockOptions(opts ...clock.Option) Option {
	return func(s *settings) { s.clockOpts = append(s.clockOpts, opts...) }
}

// WithInitialState starts from a restored state instead of NewState(rules).
func WithInitialState(state game.State) Option {
	return func(s *settings) { s.initial = &state }
}

// New builds a controller with a stopped clock. files may be nil.
func New(rules game.Rules, files Syncer, opts ...Option) *Controller {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	rules = rules.Normalize()
	c := &Controller{
		rules:     rules,
		files:     files,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		notifiers: cfg.notifiers,
		state:     game.NewState(rules),
	}
	if cfg.initial != nil {
		c.state = *cfg.initial
		c.state.Running = false
	}

	clockOpts := append([]clock.Option{
		clock.WithLogger(cfg.logger),
		clock.WithRecorder(cfg.metrics),
		clock.WithOnChange(c.setRunning),
	}, cfg.clockOpts...)
	c.clock = clock.New(c.tick, clockOpts...)
	return c
}

// Rules returns the normalized rules the controller resets to.
func (c *Controller) Rules() game.Rules {
	return c.rules
}

// State returns a copy of the current state.
func (c *Controller) State() game.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the clock and waits for it to exit.
func (c *Controller) Close() {
	c.clock.Close()
}

// setRunning runs under the clock lock whenever the clock starts or stops.
func (c *Controller) setRunning(running bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Running == running {
		return
	}
	c.state.Running = running
	c.publish()
}

// tick runs under the clock lock once per interval.
func (c *Controller) tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.state.Tick()
	var fields []filesync.Field
	if res.TimeChanged {
		fields = append(fields, filesync.FieldTime)
	}
	if res.PowerPlayChanged {
		fields = append(fields, filesync.FieldPowerPlayTime)
	}
	if res.PowerPlayExpired {
		fields = append(fields, filesync.FieldPowerPlay)
	}
	if res.Expired {
		// The clock flips Running through setRunning once we return.
		c.state.Running = false
		logging.Info(c.logger, "period clock expired")
	}

	if len(fields) > 0 {
		c.syncLocked(context.Background(), "tick", fields...)
	}
	if len(fields) > 0 || res.Expired {
		c.publish()
	}
	return !res.Expired
}

// syncLocked writes fields (all when none given) and logs failures. Requires mu.
func (c *Controller) syncLocked(ctx context.Context, op string, fields ...filesync.Field) error {
	if c.files == nil {
		return nil
	}
	err := c.files.Sync(c.state, fields...)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "file sync failed",
			logging.FieldOperation, op,
			"error", err,
		)
	}
	return err
}

// publish requires mu.
func (c *Controller) publish() {
	for _, n := range c.notifiers {
		n.Publish(c.state)
	}
}

// mutate applies fn, syncs every file and notifies. Requires mu not held.
func (c *Controller) mutate(ctx context.Context, op string, fn func(*game.State) error) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	invalid := fn(&c.state)
	if invalid != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "ignored invalid fields",
			logging.FieldOperation, op,
			"error", invalid,
		)
	}
	c.metrics.RecordMutation(op)
	syncErr := c.syncLocked(ctx, op)
	c.publish()
	return Result{State: c.state, SyncErr: syncErr, Invalid: invalid}
}
