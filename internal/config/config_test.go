package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/phasetime/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Params != params.Default() {
		t.Errorf("expected default params, got %+v", cfg.Params)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("expected theme %s, got %s", DefaultTheme, cfg.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phasetime.yaml")
	doc := "level: 8\ntheme: ink\nparams:\n  omega: 1.2\ndisplay:\n  dpr: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != 8 || cfg.Theme != "ink" || cfg.Display.DPR != 2 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Params.Omega != 1.2 || cfg.Params.Speed != params.DefaultSpeed {
		t.Errorf("expected partial params overlay, got %+v", cfg.Params)
	}
	if cfg.Display.Width != DefaultWidth {
		t.Errorf("unset width should keep default, got %d", cfg.Display.Width)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PHASETIME_SPEED", "2.5")
	t.Setenv("PHASETIME_LEVEL", "7")
	t.Setenv("PHASETIME_DISPLAY_FPS", "30")
	t.Setenv("PHASETIME_LOG_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.Speed != 2.5 || cfg.Level != 7 || cfg.Display.FPS != 30 || cfg.Log.Format != "json" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"speed too high", func(c *Config) { c.Params.Speed = 9 }},
		{"negative couple", func(c *Config) { c.Params.Couple = -0.1 }},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }},
		{"level past catalog", func(c *Config) { c.Level = 14 }},
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("level: [1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Level = 5
	cfg.Seed = 42
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Level != 5 || got.Seed != 42 || got.Params != cfg.Params {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := DefaultConfig()
		if err := cfg.ApplyPreset(name); err != nil {
			t.Fatal(err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s out of range: %v", name, err)
		}
	}
	if err := DefaultConfig().ApplyPreset("nope"); !errors.Is(err, ErrPreset) {
		t.Errorf("expected ErrPreset, got %v", err)
	}
	p, ok := GetPreset("fast")
	if !ok || p.Speed != 2.5 {
		t.Errorf("unexpected fast preset %+v", p)
	}
}
