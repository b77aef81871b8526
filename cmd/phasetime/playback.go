package main

import (
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
	"github.com/san-kum/phasetime/internal/stage"
	"github.com/san-kum/phasetime/internal/surface"
)

// frameFunc receives each headless frame. The surface is reused between
// calls.
type frameFunc func(s *surface.Surface, t float64, index int) error

// playback renders seconds of wall time at fps on a synthetic clock. Levels
// go through a Stage; a bare kind (id < 0) runs on its own loop. It returns
// the surface holding the last frame.
func playback(cfg *config.Config, kind scene.Kind, id int, seconds float64, fps int, log *slog.Logger, fn frameFunc) (*surface.Surface, error) {
	fps = max(fps, 1)
	surf := surface.New(cfg.Display.Width, cfg.Display.Height, cfg.Display.DPR)
	store := params.NewStore(cfg.Params)
	q := clock.NewFrameQueue()

	var (
		ferr  error
		index int
	)
	emit := func(s *surface.Surface, t float64) {
		if ferr != nil || fn == nil {
			return
		}
		ferr = fn(s, t, index)
		index++
	}

	if id >= 0 {
		st := stage.New(stage.Options{
			Scheduler: q,
			Store:     store,
			Surface:   surf,
			Seed:      cfg.Seed,
			OnFrame:   func(f stage.Frame) { emit(f.Surface, f.Time) },
			Logger:    log,
		})
		defer st.Close()
		if err := st.Mount(id); err != nil {
			return nil, err
		}
	} else {
		sc := scene.Default.New(kind, scene.Options{Seed: cfg.Seed})
		loop := clock.Start(q, store.Speed, func(t float64) {
			surf.Clear()
			sc.Render(surf, t, store.Get())
			emit(surf, t)
		})
		defer loop.Stop()
	}

	// the first step only sets the clock's baseline
	n := int(math.Round(seconds*float64(fps))) + 1
	step := time.Second / time.Duration(fps)
	base := time.Unix(0, 0)
	for i := 0; i < n && ferr == nil; i++ {
		q.Step(base.Add(time.Duration(i) * step))
	}
	if ferr != nil {
		return nil, ferr
	}
	return surf, nil
}
