package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, expected 3", cfg.MaxAttempts)
	}
	if cfg.MatchThreshold != 0.6 {
		t.Errorf("MatchThreshold = %v, expected 0.6", cfg.MatchThreshold)
	}
	if cfg.CycleDelay != 2000*time.Millisecond {
		t.Errorf("CycleDelay = %v, expected 2s", cfg.CycleDelay)
	}
	if cfg.EnrollmentImagePath != "/faces/user1.jpg" {
		t.Errorf("EnrollmentImagePath = %s", cfg.EnrollmentImagePath)
	}
	if cfg.EnrollmentWidth != 320 || cfg.EnrollmentHeight != 240 {
		t.Errorf("Enrollment raster = %dx%d, expected 320x240", cfg.EnrollmentWidth, cfg.EnrollmentHeight)
	}
	if !cfg.TelemetryEnabled || !cfg.AlertEnabled || !cfg.StorageEnabled || !cfg.DisplayEnabled {
		t.Error("Capabilities should default to enabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "5")
	t.Setenv("MATCH_THRESHOLD", "0.75")
	t.Setenv("CYCLE_DELAY_MS", "500")
	t.Setenv("TELEMETRY_ENABLED", "false")
	t.Setenv("ALERT_ENABLED", "0")

	cfg := Load()

	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, expected 5", cfg.MaxAttempts)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Errorf("MatchThreshold = %v, expected 0.75", cfg.MatchThreshold)
	}
	if cfg.CycleDelay != 500*time.Millisecond {
		t.Errorf("CycleDelay = %v, expected 500ms", cfg.CycleDelay)
	}
	if cfg.TelemetryEnabled {
		t.Error("TelemetryEnabled should be false")
	}
	if cfg.AlertEnabled {
		t.Error("AlertEnabled should be false")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "many")
	t.Setenv("MATCH_THRESHOLD", "high")
	t.Setenv("STORAGE_ENABLED", "maybe")

	cfg := Load()

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, expected default 3", cfg.MaxAttempts)
	}
	if cfg.MatchThreshold != 0.6 {
		t.Errorf("MatchThreshold = %v, expected default 0.6", cfg.MatchThreshold)
	}
	if !cfg.StorageEnabled {
		t.Error("StorageEnabled should fall back to default true")
	}
}
