// Package stage owns the active level: it mounts one scene at a time, drives
// it from a frame scheduler, and tears it down on switch.
//
// A Stage is driven from a single goroutine, the one that steps its
// scheduler. Switching levels stops the old loop before the new scene is
// built, so no frame of the old scene runs after Switch returns.
package stage

import (
	"log/slog"
	"sync"

	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
	"github.com/san-kum/phasetime/internal/surface"
)

// Viewport reports the container's logical size and pixel ratio.
type Viewport func() (w, h int, dpr float64)

// Frame describes one rendered frame.
type Frame struct {
	Level   int
	Kind    scene.Kind
	Time    float64
	Index   int64
	Params  params.Params
	Surface *surface.Surface
}

type Options struct {
	Scheduler clock.Scheduler
	Store     *params.Store
	Surface   *surface.Surface
	Selector  *Selector
	// Seed is handed to every mounted scene; zero keeps scenes random.
	Seed     int64
	Viewport Viewport
	OnFrame  func(Frame)
	Logger   *slog.Logger
}

type Stage struct {
	opts Options

	mu      sync.Mutex
	level   int
	sc      scene.Scene
	gen     uint64
	clk     *clock.Clock
	loop    *clock.Loop
	draw    func(float64)
	frames  int64
	mounted bool
	paused  bool
	closed  bool
}

func New(opts Options) *Stage {
	if opts.Store == nil {
		opts.Store = params.NewStore(params.Default())
	}
	if opts.Surface == nil {
		opts.Surface = surface.New(640, 400, 1)
	}
	if opts.Selector == nil {
		opts.Selector = NewSelector(nil)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.NewFrameQueue()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Stage{opts: opts, level: -1}
}

// Mount makes id the active level with a fresh scene at simulation time 0.
// It is the same operation as Switch.
func (st *Stage) Mount(id int) error { return st.Switch(id) }

// Switch stops the current scene, drops its state and mounts id.
func (st *Stage) Switch(id int) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return ErrClosed
	}
	prev := st.level
	st.stopLocked()

	sc := st.opts.Selector.Select(id, scene.Options{Seed: st.opts.Seed})
	st.gen++
	gen := st.gen
	st.level, st.sc, st.frames = id, sc, 0
	st.clk = &clock.Clock{}
	st.draw = func(t float64) { st.render(gen, t) }
	st.mounted, st.paused = true, false
	st.loop = clock.Continue(st.opts.Scheduler, st.clk, st.opts.Store.Speed, st.draw)

	st.opts.Logger.Info("scene mounted",
		"level", id, "from", prev, "kind", string(sc.Kind()), "stateful", scene.IsStateful(sc))
	return nil
}

// Reset remounts the active level.
func (st *Stage) Reset() error {
	st.mu.Lock()
	id, ok := st.level, st.mounted
	st.mu.Unlock()
	if !ok {
		return ErrNotMounted
	}
	return st.Switch(id)
}

func (st *Stage) stopLocked() {
	if st.loop != nil {
		st.loop.Stop()
		st.loop = nil
	}
}

// Pause stops ticking but keeps the scene and its time.
func (st *Stage) Pause() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.mounted || st.paused || st.closed {
		return
	}
	st.stopLocked()
	st.paused = true
	st.opts.Logger.Debug("scene paused", "level", st.level, "t", st.clk.Time())
}

// Resume restarts ticking. Wall time spent paused is not counted.
func (st *Stage) Resume() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.mounted || !st.paused || st.closed {
		return
	}
	st.paused = false
	st.loop = clock.Continue(st.opts.Scheduler, st.clk, st.opts.Store.Speed, st.draw)
	st.opts.Logger.Debug("scene resumed", "level", st.level, "t", st.clk.Time())
}

// Toggle flips between paused and running and reports the new paused state.
func (st *Stage) Toggle() bool {
	if st.Paused() {
		st.Resume()
	} else {
		st.Pause()
	}
	return st.Paused()
}

func (st *Stage) Paused() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.paused
}

// Close stops the active scene; the stage cannot be used afterwards.
func (st *Stage) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	st.stopLocked()
	st.closed = true
	st.sc = nil
	st.opts.Logger.Debug("stage closed", "level", st.level)
}

func (st *Stage) render(gen uint64, t float64) {
	st.mu.Lock()
	if st.closed || gen != st.gen {
		st.mu.Unlock()
		return
	}
	s := st.opts.Surface
	if vp := st.opts.Viewport; vp != nil {
		w, h, dpr := vp()
		s.Fit(w, h, dpr)
	}
	s.Clear()
	p := st.opts.Store.Get()
	st.sc.Render(s, t, p)
	st.frames++
	f := Frame{
		Level:   st.level,
		Kind:    st.sc.Kind(),
		Time:    t,
		Index:   st.frames,
		Params:  p,
		Surface: s,
	}
	cb := st.opts.OnFrame
	st.mu.Unlock()

	if cb != nil {
		cb(f)
	}
}

// Active returns the mounted level and scene.
func (st *Stage) Active() (level.Level, scene.Scene, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.mounted || st.closed {
		return level.Level{}, nil, false
	}
	return level.MustGet(st.level), st.sc, true
}

// Level is the active level id, or -1 before the first mount.
func (st *Stage) Level() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.level
}

// Time is the active scene's simulation time.
func (st *Stage) Time() float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.clk == nil {
		return 0
	}
	return st.clk.Time()
}

// Frames counts frames rendered since the last mount.
func (st *Stage) Frames() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.frames
}

func (st *Stage) Surface() *surface.Surface { return st.opts.Surface }
func (st *Stage) Store() *params.Store      { return st.opts.Store }
