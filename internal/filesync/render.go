package filesync

import (
	"strconv"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/format"
)

// Render returns the text written to field for state.
func Render(state game.State, field Field) string {
	switch field {
	case FieldHomeScore:
		return strconv.Itoa(state.Home)
	case FieldAwayScore:
		return strconv.Itoa(state.Away)
	case FieldPeriod:
		return format.Ordinal(state.Period)
	case FieldTime:
		return format.Time(state.Seconds)
	case FieldPowerPlay:
		return state.PowerPlay
	case FieldPowerPlayTime:
		return format.Time(state.PowerPlaySeconds)
	default:
		return ""
	}
}
