package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Predictor.Kind != "least_squares" {
		t.Errorf("Expected default predictor, got %q", cfg.Predictor.Kind)
	}
	if cfg.TopN != 5 {
		t.Errorf("Expected default top_n 5, got %d", cfg.TopN)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costbot.yaml")
	data := []byte("server:\n  port: 9000\npredictor:\n  kind: moving_average\n  window: 6\ntop_n: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Predictor.Kind != "moving_average" || cfg.Predictor.Window != 6 || cfg.TopN != 10 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costbot.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COSTBOT_PORT", "7777")
	t.Setenv("COSTBOT_PREDICTOR", "none")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Expected env port 7777, got %d", cfg.Server.Port)
	}
	if cfg.Predictor.Kind != "none" {
		t.Errorf("Expected env predictor none, got %q", cfg.Predictor.Kind)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
