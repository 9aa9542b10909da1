package filesync

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
)

// LoadState reads a previously written state.json from dir.
func LoadState(dir string) (game.State, error) {
	data, err := os.ReadFile(Path(dir, StateFile))
	if err != nil {
		return game.State{}, err
	}
	var state game.State
	if err := json.Unmarshal(data, &state); err != nil {
		return game.State{}, fmt.Errorf("decode %s: %w", StateFile, err)
	}
	if state.Period < 1 {
		state.Period = 1
	}
	if state.Seconds < 0 {
		state.Seconds = 0
	}
	if state.PowerPlaySeconds <= 0 {
		state.PowerPlaySeconds = 0
		state.PowerPlay = ""
		state.PowerPlaySide = game.SideNone
	}
	// A restored clock always starts stopped.
	state.Running = false
	return state, nil
}
