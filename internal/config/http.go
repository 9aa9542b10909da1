package config

import "strings"

// HTTPConfig controls the control API middleware.
type HTTPConfig struct {
	Limiter        LimiterConfig
	TrustedOrigins []string
}

// LimiterConfig controls the rate limiter on /state and /ws.
type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		Limiter: LimiterConfig{
			Enabled: boolEnvOrDefault(envLimiterEnabled, defaultLimiterEnabled),
			RPS:     floatEnvOrDefault(envLimiterRPS, defaultLimiterRPS),
			Burst:   intEnvOrDefault(envLimiterBurst, defaultLimiterBurst),
		},
		TrustedOrigins: originsEnvOrDefault(envTrustedOrigins, []string{"*"}),
	}
}

func originsEnvOrDefault(key string, defaultValue []string) []string {
	origins := strings.Fields(strings.ReplaceAll(envOrDefault(key, ""), ",", " "))
	if len(origins) == 0 {
		return defaultValue
	}
	return origins
}
