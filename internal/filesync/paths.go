package filesync

import "path/filepath"

// Field names one overlay file.
type Field string

const (
	FieldHomeScore     Field = "home_score.txt"
	FieldAwayScore     Field = "away_score.txt"
	FieldPeriod        Field = "period.txt"
	FieldTime          Field = "time.txt"
	FieldPowerPlay     Field = "pp.txt"
	FieldPowerPlayTime Field = "pp_time.txt"
)

// StateFile is the optional full JSON snapshot written next to the text files.
const StateFile = "state.json"

// AllFields lists every overlay file in write order.
var AllFields = []Field{
	FieldHomeScore,
	FieldAwayScore,
	FieldPeriod,
	FieldTime,
	FieldPowerPlay,
	FieldPowerPlayTime,
}

// Path builds the path to a file inside dir.
func Path(dir string, name string) string {
	return filepath.Join(dir, name)
}
