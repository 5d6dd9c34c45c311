package config

import (
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("ODDS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without ODDS_API_KEY")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ODDS_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.HTTPPort != "8080" || cfg.MetricsPort != "9090" {
		t.Errorf("ports = %s/%s", cfg.HTTPPort, cfg.MetricsPort)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.WarmInterval != 0 {
		t.Errorf("WarmInterval = %v, want disabled by default", cfg.WarmInterval)
	}
	if cfg.ValueBetThreshold != -150 {
		t.Errorf("ValueBetThreshold = %d", cfg.ValueBetThreshold)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Errorf("RateLimitPerMinute = %d", cfg.RateLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ODDS_API_KEY", "key")
	t.Setenv("ENV", "prod")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("WARM_INTERVAL", "10m")
	t.Setenv("VALUE_BET_THRESHOLD", "-120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.WarmInterval != 10*time.Minute {
		t.Errorf("WarmInterval = %v", cfg.WarmInterval)
	}
	if cfg.ValueBetThreshold != -120 {
		t.Errorf("ValueBetThreshold = %d", cfg.ValueBetThreshold)
	}
}

func TestLoadRejectsPositiveThreshold(t *testing.T) {
	t.Setenv("ODDS_API_KEY", "key")
	t.Setenv("VALUE_BET_THRESHOLD", "150")

	if _, err := Load(); err == nil {
		t.Fatal("positive threshold should be rejected")
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("ODDS_API_KEY", "key")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v, want default", cfg.CacheTTL)
	}
}
