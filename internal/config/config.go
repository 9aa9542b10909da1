package config

import "github.com/betterscore/scoreboard-service/internal/domain/game"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	TickInterval Duration
	Output       OutputConfig
	Rules        game.Rules
	RulesFile    string
	HTTP         HTTPConfig
	Metrics      MetricsConfig
	NATS         NATSConfig
}

// Load reads configuration from environment variables with sensible defaults.
// Rules from RULES_FILE, when set, override PERIOD_SECONDS/POWER_PLAY_SECONDS.
func Load() (Config, error) {
	cfg := Config{
		Port:         envOrDefault(envPort, defaultPort),
		TickInterval: durationEnvOrDefault(envTickInterval, defaultTickInterval),
		Output:       loadOutput(),
		Rules:        loadRules(),
		RulesFile:    envOrDefault(envRulesFile, ""),
		HTTP:         loadHTTP(),
		Metrics:      loadMetrics(),
		NATS:         loadNATS(),
	}

	if cfg.RulesFile != "" {
		rules, err := LoadRulesFile(cfg.RulesFile, cfg.Rules)
		if err != nil {
			return cfg, err
		}
		cfg.Rules = rules
	}
	return cfg, nil
}
