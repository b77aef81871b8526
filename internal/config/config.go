package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 600
	DefaultFPS    = 60
	DefaultTheme  = "paper"
	DefaultVolume = 0.3

	// EnvPrefix namespaces environment overrides, e.g. PHASETIME_SPEED.
	EnvPrefix = "PHASETIME_"
)

type Config struct {
	Level   int           `yaml:"level" env:"LEVEL" validate:"gte=0"`
	Seed    int64         `yaml:"seed" env:"SEED"`
	Theme   string        `yaml:"theme" env:"THEME" validate:"oneof=paper ink retro ocean sunset"`
	Params  params.Params `yaml:"params"`
	Display DisplayConfig `yaml:"display" envPrefix:"DISPLAY_"`
	Audio   AudioConfig   `yaml:"audio" envPrefix:"AUDIO_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

type DisplayConfig struct {
	Width  int     `yaml:"width" env:"WIDTH" validate:"gte=160,lte=7680"`
	Height int     `yaml:"height" env:"HEIGHT" validate:"gte=100,lte=4320"`
	DPR    float64 `yaml:"dpr" env:"DPR" validate:"gt=0,lte=4"`
	FPS    int     `yaml:"fps" env:"FPS" validate:"gte=1,lte=240"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" env:"VOLUME" validate:"gte=0,lte=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`
	// File receives log output; empty means stderr, except in the
	// full-screen UI where it means no logging.
	File string `yaml:"file" env:"FILE"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:  DefaultTheme,
		Params: params.Default(),
		Display: DisplayConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			DPR:    1,
			FPS:    DefaultFPS,
		},
		Audio: AudioConfig{Volume: DefaultVolume},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its range and the level against the
// catalog.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			f := ve[0]
			return fmt.Errorf("%w: %s fails %s=%s (got %v)", ErrInvalid, f.Namespace(), f.Tag(), f.Param(), f.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, ok := level.Get(c.Level); !ok {
		return fmt.Errorf("%w: level %d outside 0-%d", ErrInvalid, c.Level, level.Count()-1)
	}
	return nil
}

// Load reads path over the defaults, applies PHASETIME_* overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
