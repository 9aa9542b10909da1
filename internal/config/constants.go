package config

import "time"

const (
	envPort           = "PORT"
	envTickInterval   = "CLOCK_TICK_INTERVAL"
	envOutputDir      = "OUTPUT_DIR"
	envStateSnapshot  = "STATE_SNAPSHOT_ENABLED"
	envRestoreState   = "RESTORE_STATE"
	envPeriodSeconds  = "PERIOD_SECONDS"
	envPowerPlaySecs  = "POWER_PLAY_SECONDS"
	envRulesFile      = "RULES_FILE"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envLimiterEnabled = "LIMITER_ENABLED"
	envLimiterRPS     = "LIMITER_RPS"
	envLimiterBurst   = "LIMITER_BURST"
	envTrustedOrigins = "CORS_TRUSTED_ORIGINS"
	envNATSURL        = "NATS_URL"
	envNATSSubject    = "NATS_SUBJECT"

	defaultPort = "3000"
	// The overlay counts down in whole seconds.
	defaultTickInterval   = Duration(time.Second)
	defaultOutputFolder   = "BetterScore"
	defaultStateSnapshot  = false
	defaultRestoreState   = false
	defaultMetricsPort    = "9090"
	defaultServiceName    = "scoreboard-service"
	defaultLimiterEnabled = true
	// Overlays poll /state; the burst covers several browser sources reloading at once.
	defaultLimiterRPS   = 20.0
	defaultLimiterBurst = 40
	defaultNATSSubject  = "scoreboard.state"
)
