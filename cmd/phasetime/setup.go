package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/phasetime/internal/audio"
	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/logger"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
)

// loadConfig layers file, environment, preset and explicitly set flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg = config.DefaultConfig()
		err = config.ApplyEnv(cfg)
	}
	if err != nil {
		return nil, err
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Level = levelID
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("speed") {
		cfg.Params.Speed = speed
	}
	if flags.Changed("omega") {
		cfg.Params.Omega = omega
	}
	if flags.Changed("couple") {
		cfg.Params.Couple = couple
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("audio") {
		cfg.Audio.Enabled = withAudio
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("width") && width > 0 {
		cfg.Display.Width = width
	}
	if flags.Changed("height") && height > 0 {
		cfg.Display.Height = height
	}
	if flags.Changed("dpr") && dpr > 0 {
		cfg.Display.DPR = dpr
	}
	if flags.Changed("fps") && frameRate > 0 {
		cfg.Display.FPS = frameRate
	}
	cfg.Params = params.Clamp(cfg.Params)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to cfg.Log.File when set, otherwise to fallback. The
// returned closer releases the file.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		if fallback == nil {
			return logger.Discard(), func() {}, nil
		}
		log, err := logger.Setup(fallback, cfg.Log.Level, cfg.Log.Format)
		return log, func() {}, err
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := logger.Setup(f, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, func() { f.Close() }, nil
}

// startAudio follows store with a sonification stream. A device failure is
// logged and playback continues silently.
func startAudio(cfg *config.Config, store *params.Store, log *slog.Logger) *audio.Processor {
	if !cfg.Audio.Enabled {
		return nil
	}
	proc := audio.NewProcessor(cfg.Audio.Volume, log)
	proc.SetParams(store.Get())
	store.OnChange(proc.SetParams)
	if err := proc.Start(); err != nil {
		log.Warn("audio unavailable", "err", err)
		return nil
	}
	return proc
}

// target resolves the optional [level] argument and --scene into a scene
// kind and the level id it came from (-1 for a bare kind).
func target(cfg *config.Config, args []string) (scene.Kind, int, error) {
	if sceneKind != "" {
		k, err := scene.Default.Parse(sceneKind)
		if err != nil {
			return "", -1, err
		}
		return k, -1, nil
	}
	id := cfg.Level
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", -1, fmt.Errorf("invalid level %q", args[0])
		}
		id = n
	}
	lv, err := level.Lookup(id)
	if err != nil {
		return "", -1, err
	}
	return lv.Scene, lv.ID, nil
}
