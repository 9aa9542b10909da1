package scoreboard

import (
	"context"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
)

// Operation names used in logs and metrics.
const (
	OpScoreHome        = "score_home"
	OpScoreAway        = "score_away"
	OpResetScore       = "reset_score"
	OpNextPeriod       = "next_period"
	OpResetPeriod      = "reset_period"
	OpPowerPlay        = "power_play"
	OpClearPowerPlay   = "clear_power_play"
	OpStartClock       = "start_clock"
	OpStopClock        = "stop_clock"
	OpResetClock       = "reset_clock"
	OpSetScore         = "set_score"
	OpSetPeriod        = "set_period"
	OpSetTime          = "set_time"
	OpSetPowerPlayTime = "set_power_play_time"
	OpSync             = "sync"
)

func (c *Controller) ScoreHome(ctx context.Context) Result {
	return c.mutate(ctx, OpScoreHome, func(s *game.State) error {
		s.ScoreHome()
		return nil
	})
}

func (c *Controller) ScoreAway(ctx context.Context) Result {
	return c.mutate(ctx, OpScoreAway, func(s *game.State) error {
		s.ScoreAway()
		return nil
	})
}

func (c *Controller) ResetScore(ctx context.Context) Result {
	return c.mutate(ctx, OpResetScore, func(s *game.State) error {
		s.ResetScore()
		return nil
	})
}

func (c *Controller) NextPeriod(ctx context.Context) Result {
	return c.mutate(ctx, OpNextPeriod, func(s *game.State) error {
		s.NextPeriod()
		return nil
	})
}

func (c *Controller) ResetPeriod(ctx context.Context) Result {
	return c.mutate(ctx, OpResetPeriod, func(s *game.State) error {
		s.ResetPeriod()
		return nil
	})
}

// SetPowerPlay gives side the power play. A running countdown is kept.
func (c *Controller) SetPowerPlay(ctx context.Context, side game.Side) Result {
	return c.mutate(ctx, OpPowerPlay, func(s *game.State) error {
		if side == game.SideNone {
			return game.NewFieldError("side", "must be home or away")
		}
		s.StartPowerPlay(side, c.rules)
		return nil
	})
}

func (c *Controller) ClearPowerPlay(ctx context.Context) Result {
	return c.mutate(ctx, OpClearPowerPlay, func(s *game.State) error {
		s.ClearPowerPlay()
		return nil
	})
}

// StartClock starts the game clock; starting a running clock changes nothing.
func (c *Controller) StartClock(ctx context.Context) Result {
	c.clock.Start()
	c.metrics.RecordMutation(OpStartClock)
	return Result{State: c.State()}
}

// StopClock stops the game clock; stopping a stopped clock changes nothing.
func (c *Controller) StopClock(ctx context.Context) Result {
	c.clock.Stop()
	c.metrics.RecordMutation(OpStopClock)
	return Result{State: c.State()}
}

// ResetClock stops the clock and restores a full period.
func (c *Controller) ResetClock(ctx context.Context) Result {
	c.clock.Stop()
	return c.mutate(ctx, OpResetClock, func(s *game.State) error {
		s.ResetClock(c.rules)
		return nil
	})
}

// SetScore overwrites the scores present in the payload.
func (c *Controller) SetScore(ctx context.Context, home, away *int) Result {
	return c.mutate(ctx, OpSetScore, func(s *game.State) error {
		return s.SetScore(home, away)
	})
}

func (c *Controller) SetPeriod(ctx context.Context, period *int) Result {
	return c.mutate(ctx, OpSetPeriod, func(s *game.State) error {
		return s.SetPeriod(period)
	})
}

// SetTime stops the clock before overwriting the game time, so no tick
// lands after the new value is written.
func (c *Controller) SetTime(ctx context.Context, seconds *int) Result {
	c.clock.Stop()
	return c.mutate(ctx, OpSetTime, func(s *game.State) error {
		return s.SetTime(seconds)
	})
}

func (c *Controller) SetPowerPlayTime(ctx context.Context, seconds *int) Result {
	return c.mutate(ctx, OpSetPowerPlayTime, func(s *game.State) error {
		return s.SetPowerPlayTime(seconds)
	})
}

// Sync rewrites every overlay file from the current state.
func (c *Controller) Sync(ctx context.Context) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.syncLocked(ctx, OpSync)
	return Result{State: c.state, SyncErr: err}
}
