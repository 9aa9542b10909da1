package config

import (
	"os"
	"path/filepath"
)

// OutputConfig controls where the overlay text files are written.
type OutputConfig struct {
	Dir           string
	StateSnapshot bool // also write state.json alongside the text files
	Restore       bool // resume from state.json on startup when present
}

func loadOutput() OutputConfig {
	return OutputConfig{
		Dir:           envOrDefault(envOutputDir, DefaultOutputDir()),
		StateSnapshot: boolEnvOrDefault(envStateSnapshot, defaultStateSnapshot),
		Restore:       boolEnvOrDefault(envRestoreState, defaultRestoreState),
	}
}

// DefaultOutputDir is ~/Documents/BetterScore, or ./BetterScore when no home directory is known.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultOutputFolder
	}
	return filepath.Join(home, "Documents", defaultOutputFolder)
}
