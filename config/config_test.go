package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Tracker.CapSeconds != 180 {
		t.Errorf("cap = %d, want 180", cfg.Tracker.CapSeconds)
	}
	if cfg.Tracker.MaxLevel != 18 {
		t.Errorf("max level = %d, want 18", cfg.Tracker.MaxLevel)
	}
	if cfg.Colors.Base != (RGB{252, 248, 242}) {
		t.Errorf("base color = %v", cfg.Colors.Base)
	}
	if len(cfg.Grain.Layers) != 3 {
		t.Fatalf("grain layers = %d, want 3", len(cfg.Grain.Layers))
	}
	if cfg.Derived.RippleLifetime != 1200*time.Millisecond {
		t.Errorf("ripple lifetime = %v, want 1.2s", cfg.Derived.RippleLifetime)
	}
	if cfg.Derived.LongPressHold != time.Second {
		t.Errorf("hold = %v, want 1s", cfg.Derived.LongPressHold)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tracker:\n  max_level: 6\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tracker.MaxLevel != 6 {
		t.Errorf("max level = %d, want 6", cfg.Tracker.MaxLevel)
	}
	if cfg.Tracker.CapSeconds != 180 {
		t.Errorf("cap = %d, want default 180", cfg.Tracker.CapSeconds)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero cap", "tracker:\n  cap_seconds: 0\n"},
		{"zero max level", "tracker:\n  max_level: 0\n"},
		{"inverted delay", "lights:\n  min_delay_ms: 5000\n  max_delay_ms: 1000\n"},
		{"single opacity key", "ripple:\n  opacity_keys: [0.3]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Tracker.MaxLevel = 9

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Tracker.MaxLevel != 9 {
		t.Errorf("max level = %d, want 9", loaded.Tracker.MaxLevel)
	}
}
