package game

import "strings"

// Side identifies which team holds a power play.
type Side string

const (
	SideNone Side = ""
	SideHome Side = "home"
	SideAway Side = "away"
)

// ParseSide maps "home"/"away" (any case) to a Side.
func ParseSide(value string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(SideHome):
		return SideHome, true
	case string(SideAway):
		return SideAway, true
	default:
		return SideNone, false
	}
}

const (
	DefaultPeriodSeconds    = 20 * 60
	DefaultPowerPlaySeconds = 2 * 60
	DefaultHomeLabel        = "PP: HOME"
	DefaultAwayLabel        = "PP: AWAY"
)

// Rules holds the game constants a reset or power play starts from.
type Rules struct {
	PeriodSeconds    int    `yaml:"period_seconds" json:"periodSeconds"`
	PowerPlaySeconds int    `yaml:"power_play_seconds" json:"powerPlaySeconds"`
	HomeLabel        string `yaml:"home_label" json:"homeLabel"`
	AwayLabel        string `yaml:"away_label" json:"awayLabel"`
}

// DefaultRules returns a 20 minute period and a 2 minute minor penalty.
func DefaultRules() Rules {
	return Rules{
		PeriodSeconds:    DefaultPeriodSeconds,
		PowerPlaySeconds: DefaultPowerPlaySeconds,
		HomeLabel:        DefaultHomeLabel,
		AwayLabel:        DefaultAwayLabel,
	}
}

// Normalize replaces unset or non-positive values with defaults.
func (r Rules) Normalize() Rules {
	d := DefaultRules()
	if r.PeriodSeconds <= 0 {
		r.PeriodSeconds = d.PeriodSeconds
	}
	if r.PowerPlaySeconds <= 0 {
		r.PowerPlaySeconds = d.PowerPlaySeconds
	}
	if r.HomeLabel == "" {
		r.HomeLabel = d.HomeLabel
	}
	if r.AwayLabel == "" {
		r.AwayLabel = d.AwayLabel
	}
	return r
}

// Label returns the display label for side; SideNone renders as empty.
func (r Rules) Label(side Side) string {
	switch side {
	case SideHome:
		return r.HomeLabel
	case SideAway:
		return r.AwayLabel
	default:
		return ""
	}
}

// State is the scoreboard record mirrored to the overlay files.
type State struct {
	Home             int    `json:"home"`
	Away             int    `json:"away"`
	Period           int    `json:"period"`
	Seconds          int    `json:"seconds"`
	PowerPlay        string `json:"powerPlay"`
	PowerPlaySide    Side   `json:"powerPlaySide"`
	PowerPlaySeconds int    `json:"powerPlaySeconds"`
	Running          bool   `json:"running"`
}

// NewState builds the opening state: 0-0, 1st period, full clock, no power play.
func NewState(rules Rules) State {
	rules = rules.Normalize()
	return State{
		Period:  1,
		Seconds: rules.PeriodSeconds,
	}
}

// PowerPlayActive reports whether a side currently holds a power play.
func (s State) PowerPlayActive() bool {
	return s.PowerPlay != ""
}
