package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.TickInterval != time.Second {
		t.Fatalf("expected 1s tick interval, got %s", cfg.TickInterval)
	}
	if cfg.Rules.PeriodSeconds != 1200 || cfg.Rules.PowerPlaySeconds != 120 {
		t.Fatalf("expected default rules, got %+v", cfg.Rules)
	}
	if !strings.HasSuffix(cfg.Output.Dir, defaultOutputFolder) {
		t.Fatalf("expected output dir to end in %s, got %s", defaultOutputFolder, cfg.Output.Dir)
	}
	if cfg.Output.StateSnapshot || cfg.Output.Restore {
		t.Fatalf("expected state snapshot and restore disabled by default")
	}
	if !cfg.HTTP.Limiter.Enabled || cfg.HTTP.Limiter.RPS != defaultLimiterRPS || cfg.HTTP.Limiter.Burst != defaultLimiterBurst {
		t.Fatalf("unexpected limiter defaults %+v", cfg.HTTP.Limiter)
	}
	if len(cfg.HTTP.TrustedOrigins) != 1 || cfg.HTTP.TrustedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origins, got %v", cfg.HTTP.TrustedOrigins)
	}
	if cfg.NATS.URL != "" || cfg.NATS.Subject != defaultNATSSubject {
		t.Fatalf("unexpected nats defaults %+v", cfg.NATS)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envOutputDir, "/tmp/overlay")
	t.Setenv(envStateSnapshot, "true")
	t.Setenv(envRestoreState, "1")
	t.Setenv(envPeriodSeconds, "900")
	t.Setenv(envPowerPlaySecs, "300")
	t.Setenv(envLimiterRPS, "2.5")
	t.Setenv(envLimiterBurst, "5")
	t.Setenv(envLimiterEnabled, "false")
	t.Setenv(envTrustedOrigins, "http://localhost:8080, file://")
	t.Setenv(envNATSURL, "nats://127.0.0.1:4222")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Output.Dir != "/tmp/overlay" || !cfg.Output.StateSnapshot || !cfg.Output.Restore {
		t.Fatalf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Rules.PeriodSeconds != 900 || cfg.Rules.PowerPlaySeconds != 300 {
		t.Fatalf("unexpected rules %+v", cfg.Rules)
	}
	if cfg.HTTP.Limiter.Enabled || cfg.HTTP.Limiter.RPS != 2.5 || cfg.HTTP.Limiter.Burst != 5 {
		t.Fatalf("unexpected limiter %+v", cfg.HTTP.Limiter)
	}
	if got := cfg.HTTP.TrustedOrigins; len(got) != 2 || got[0] != "http://localhost:8080" || got[1] != "file://" {
		t.Fatalf("unexpected origins %v", got)
	}
	if cfg.NATS.URL != "nats://127.0.0.1:4222" {
		t.Fatalf("unexpected nats url %s", cfg.NATS.URL)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envTickInterval, "not-a-duration")

	cfg, _ := Load()

	if cfg.TickInterval != defaultTickInterval {
		t.Fatalf("expected default tick interval on invalid value, got %s", cfg.TickInterval)
	}
}

func TestLoadRulesFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	contents := "period_seconds: 600\nhome_label: \"PP: HAWKS\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}
	t.Setenv(envRulesFile, path)
	t.Setenv(envPowerPlaySecs, "300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Rules.PeriodSeconds != 600 {
		t.Fatalf("expected file period 600, got %d", cfg.Rules.PeriodSeconds)
	}
	if cfg.Rules.PowerPlaySeconds != 300 {
		t.Fatalf("expected env power play kept, got %d", cfg.Rules.PowerPlaySeconds)
	}
	if cfg.Rules.HomeLabel != "PP: HAWKS" || cfg.Rules.AwayLabel != game.DefaultAwayLabel {
		t.Fatalf("unexpected labels %+v", cfg.Rules)
	}
}

func TestLoadRulesFileErrors(t *testing.T) {
	base := game.DefaultRules()

	if _, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"), base); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("period_seconds: [1, 2"), 0o644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}
	rules, err := LoadRulesFile(path, base)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if rules != base {
		t.Fatalf("expected base rules returned on error, got %+v", rules)
	}
}

func TestDefaultOutputDirUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := DefaultOutputDir(); got != filepath.Join(home, "Documents", "BetterScore") {
		t.Fatalf("unexpected default output dir %s", got)
	}
}
