package game

// ScoreHome adds a goal for the home side.
func (s *State) ScoreHome() { s.Home++ }

// ScoreAway adds a goal for the away side.
func (s *State) ScoreAway() { s.Away++ }

// ResetScore zeroes both scores.
func (s *State) ResetScore() {
	s.Home = 0
	s.Away = 0
}

// NextPeriod advances the period counter.
func (s *State) NextPeriod() { s.Period++ }

// ResetPeriod returns to the 1st period.
func (s *State) ResetPeriod() { s.Period = 1 }

// StartPowerPlay attributes the power play to side. A countdown already running is kept;
// only an expired countdown restarts at rules.PowerPlaySeconds.
func (s *State) StartPowerPlay(side Side, rules Rules) {
	rules = rules.Normalize()
	s.PowerPlay = rules.Label(side)
	s.PowerPlaySide = side
	if s.PowerPlaySeconds == 0 {
		s.PowerPlaySeconds = rules.PowerPlaySeconds
	}
}

// ClearPowerPlay removes the label and the countdown.
func (s *State) ClearPowerPlay() {
	s.PowerPlay = ""
	s.PowerPlaySide = SideNone
	s.PowerPlaySeconds = 0
}

// ResetClock puts a full period back on the game clock.
func (s *State) ResetClock(rules Rules) {
	s.Seconds = rules.Normalize().PeriodSeconds
}

// SetScore overwrites the scores that are present and non-negative.
func (s *State) SetScore(home, away *int) error {
	verr := NewFieldErrors()
	if home != nil {
		if *home < 0 {
			verr.Add("home", "must not be negative")
		} else {
			s.Home = *home
		}
	}
	if away != nil {
		if *away < 0 {
			verr.Add("away", "must not be negative")
		} else {
			s.Away = *away
		}
	}
	return verr.OrNil()
}

// SetPeriod overwrites the period when present and at least 1.
func (s *State) SetPeriod(period *int) error {
	if period == nil {
		return nil
	}
	if *period < 1 {
		return NewFieldError("period", "must be at least 1")
	}
	s.Period = *period
	return nil
}

// SetTime overwrites the game clock when present and non-negative.
func (s *State) SetTime(seconds *int) error {
	if seconds == nil {
		return nil
	}
	if *seconds < 0 {
		return NewFieldError("seconds", "must not be negative")
	}
	s.Seconds = *seconds
	return nil
}

// SetPowerPlayTime overwrites the power-play countdown when present and non-negative.
// A countdown of 0 clears the power play.
func (s *State) SetPowerPlayTime(seconds *int) error {
	var err error
	if seconds != nil {
		if *seconds < 0 {
			err = NewFieldError("seconds", "must not be negative")
		} else {
			s.PowerPlaySeconds = *seconds
		}
	}
	if s.PowerPlaySeconds == 0 {
		s.PowerPlay = ""
		s.PowerPlaySide = SideNone
	}
	return err
}

// TickResult reports what a single clock tick changed.
type TickResult struct {
	TimeChanged      bool
	PowerPlayChanged bool
	PowerPlayExpired bool
	Expired          bool
}

// Tick advances the game clock and the power-play countdown by one second.
// The two counters are independent; Expired is set once the game clock sits at 0.
func (s *State) Tick() TickResult {
	var res TickResult
	if s.Seconds > 0 {
		s.Seconds--
		res.TimeChanged = true
	}
	if s.Seconds <= 0 {
		s.Seconds = 0
		res.Expired = true
	}

	if s.PowerPlayActive() && s.PowerPlaySeconds > 0 {
		s.PowerPlaySeconds--
		res.PowerPlayChanged = true
		if s.PowerPlaySeconds == 0 {
			s.PowerPlay = ""
			s.PowerPlaySide = SideNone
			res.PowerPlayExpired = true
		}
	}
	return res
}
