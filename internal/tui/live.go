package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/stage"
	"github.com/san-kum/phasetime/internal/surface"
	"github.com/san-kum/phasetime/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	home        = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// WatchOptions configures a plain streaming view of one level.
type WatchOptions struct {
	Config *config.Config
	Store  *params.Store
	// Cols and Rows size the Braille view in cells.
	Cols, Rows int
	// Color enables per-cell ANSI colour.
	Color  bool
	Logger *slog.Logger
}

// LiveRenderer writes each frame of a stage to a terminal as ANSI text.
type LiveRenderer struct {
	w      *bufio.Writer
	canvas *viz.Canvas
	theme  viz.Theme
	styles viz.Styles
	color  bool
	first  bool
	hist   []float64
}

func NewLiveRenderer(w io.Writer, cols, rows int, theme viz.Theme, color bool) *LiveRenderer {
	return &LiveRenderer{
		w:      bufio.NewWriter(w),
		canvas: viz.NewCanvas(cols, rows),
		theme:  theme,
		styles: viz.NewStyles(theme),
		color:  color,
		first:  true,
	}
}

// OnFrame is a stage.Options.OnFrame callback.
func (r *LiveRenderer) OnFrame(f stage.Frame) {
	r.canvas.FromImage(f.Surface.Image(), f.Surface.Background(), viz.DefaultThreshold)
	r.hist = append(r.hist, f.Surface.Luminance())
	if len(r.hist) > r.canvas.Width {
		r.hist = r.hist[len(r.hist)-r.canvas.Width:]
	}

	if r.first {
		r.w.WriteString(clearScreen + hideCursor)
		r.first = false
	} else {
		r.w.WriteString(home)
	}
	if r.color {
		r.w.WriteString(r.canvas.Render(r.theme) + "\n")
	} else {
		r.w.WriteString(r.canvas.String())
	}
	fmt.Fprintf(r.w, "level %d  %-16s t=%7.2fs  frame %-6d speed %.1f omega %.2f couple %.2f\n",
		f.Level, f.Kind, f.Time, f.Index, f.Params.Speed, f.Params.Omega, f.Params.Couple)
	if r.color {
		r.w.WriteString(viz.SparklineChart(r.hist, r.canvas.Width, r.styles) + "\n")
	}
	r.w.Flush()
}

// Close restores the cursor.
func (r *LiveRenderer) Close() {
	r.w.WriteString(showCursor)
	r.w.Flush()
}

// Watch streams the configured level to w until ctx ends. A deadline on ctx
// is a normal finish.
func Watch(ctx context.Context, w io.Writer, opts WatchOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	store := opts.Store
	if store == nil {
		store = params.NewStore(cfg.Params)
	}
	cols, rows := max(opts.Cols, 20), max(opts.Rows, 6)

	r := NewLiveRenderer(w, cols, rows, viz.GetTheme(cfg.Theme), opts.Color)
	defer r.Close()

	q := clock.NewFrameQueue()
	st := stage.New(stage.Options{
		Scheduler: q,
		Store:     store,
		Surface:   surface.New(cols*2*dotPixels, rows*4*dotPixels, 1),
		Seed:      cfg.Seed,
		OnFrame:   r.OnFrame,
		Logger:    opts.Logger,
	})
	defer st.Close()
	if err := st.Mount(cfg.Level); err != nil {
		return err
	}

	fps := max(cfg.Display.FPS, 1)
	err := clock.Run(ctx, q, time.Second/time.Duration(fps))
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
