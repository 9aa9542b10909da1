package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
)

func loadRules() game.Rules {
	return game.Rules{
		PeriodSeconds:    intEnvOrDefault(envPeriodSeconds, game.DefaultPeriodSeconds),
		PowerPlaySeconds: intEnvOrDefault(envPowerPlaySecs, game.DefaultPowerPlaySeconds),
		HomeLabel:        game.DefaultHomeLabel,
		AwayLabel:        game.DefaultAwayLabel,
	}
}

// LoadRulesFile reads a YAML rules file. Keys missing from the file keep the values in base.
//
//	period_seconds: 900
//	power_play_seconds: 120
//	home_label: "PP: HAWKS"
//	away_label: "PP: VISITORS"
func LoadRulesFile(path string, base game.Rules) (game.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := base
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return base, fmt.Errorf("failed to parse rules file: %w", err)
	}
	return rules.Normalize(), nil
}
