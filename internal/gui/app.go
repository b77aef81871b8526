// Package gui is the desktop front end: a raylib window that uploads each
// rendered scene frame to a texture and draws the level list, sliders and
// HUD around it.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/phasetime/internal/audio"
	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/export"
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/stage"
	"github.com/san-kum/phasetime/internal/surface"
)

var (
	ColBg      = rl.NewColor(250, 250, 250, 255) // Paper
	ColPanel   = rl.NewColor(240, 240, 240, 255)
	ColAccent  = rl.NewColor(192, 57, 43, 255)
	ColSelect  = rl.NewColor(17, 17, 17, 255)
	ColText    = rl.NewColor(68, 68, 68, 255)
	ColTextDim = rl.NewColor(153, 153, 153, 255)
	ColTrack   = rl.NewColor(210, 210, 210, 255)
)

const (
	sidebarWidth  = 270
	controlsWidth = 290
	footerHeight  = 96
	sliderWidth   = 220
	historyLen    = 240
)

var fontPaths = []string{
	"/usr/share/fonts/liberation/LiberationMono-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
}

type Options struct {
	Config *config.Config
	Store  *params.Store
	Audio  *audio.Processor
	Logger *slog.Logger
	OutDir string
}

type App struct {
	cfg    *config.Config
	store  *params.Store
	queue  *clock.FrameQueue
	stage  *stage.Stage
	audio  *audio.Processor
	log    *slog.Logger
	outDir string

	font    rl.Font
	tex     rl.Texture2D
	texW    int
	texH    int
	dragged int
	control int

	showCompanion bool
	status        string
	statusUntil   time.Time
	luminance     []float64

	recorder *export.GIFRecorder
	manifest *export.Manifest
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Display.Width+sidebarWidth+controlsWidth), int32(cfg.Display.Height+footerHeight), "phasetime")
	rl.SetTargetFPS(int32(cfg.Display.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	for _, p := range fontPaths {
		if _, err := os.Stat(p); err == nil {
			font := rl.LoadFontEx(p, 32, nil, 0)
			rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
			return font
		}
	}
	return rl.GetFontDefault()
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	initWindow(cfg)
	defer rl.CloseWindow()

	a := newApp(cfg, opts)
	defer a.close()
	if err := a.stage.Mount(cfg.Level); err != nil {
		return err
	}
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			break
		}
		a.Draw()
	}
	return nil
}

func newApp(cfg *config.Config, opts Options) *App {
	store := opts.Store
	if store == nil {
		store = params.NewStore(cfg.Params)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		cfg:     cfg,
		store:   store,
		queue:   clock.NewFrameQueue(),
		audio:   opts.Audio,
		log:     log,
		outDir:  opts.OutDir,
		font:    loadFont(),
		dragged: -1,
	}
	a.stage = stage.New(stage.Options{
		Scheduler: a.queue,
		Store:     store,
		Surface:   surface.New(cfg.Display.Width, cfg.Display.Height, cfg.Display.DPR),
		Seed:      cfg.Seed,
		Viewport:  a.viewport,
		OnFrame:   a.onFrame,
		Logger:    log,
	})
	return a
}

func (a *App) close() {
	a.stopRecording()
	a.stage.Close()
	if a.tex.ID != 0 {
		rl.UnloadTexture(a.tex)
	}
}

// sceneRect is the area between the side panels, in screen units.
func (a *App) sceneRect() rl.Rectangle {
	w := float32(rl.GetScreenWidth() - sidebarWidth - controlsWidth)
	h := float32(rl.GetScreenHeight() - footerHeight)
	return rl.NewRectangle(sidebarWidth, 0, max(w, 64), max(h, 64))
}

func (a *App) viewport() (int, int, float64) {
	r := a.sceneRect()
	dpr := float64(rl.GetWindowScaleDPI().X)
	if dpr <= 0 {
		dpr = a.cfg.Display.DPR
	}
	return int(r.Width), int(r.Height), dpr
}

func (a *App) onFrame(f stage.Frame) {
	img := f.Surface.Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if a.tex.ID == 0 || a.texW != w || a.texH != h {
		if a.tex.ID != 0 {
			rl.UnloadTexture(a.tex)
		}
		ri := rl.NewImageFromImage(img)
		a.tex = rl.LoadTextureFromImage(ri)
		rl.UnloadImage(ri)
		rl.SetTextureFilter(a.tex, rl.FilterBilinear)
		a.texW, a.texH = w, h
	} else {
		rl.UpdateTexture(a.tex, pixels(img.Pix))
	}

	a.luminance = append(a.luminance, f.Surface.Luminance())
	if len(a.luminance) > historyLen {
		a.luminance = a.luminance[len(a.luminance)-historyLen:]
	}
	if a.recorder != nil && f.Index%2 == 0 {
		if err := a.recorder.Add(img); errors.Is(err, export.ErrRecording) {
			a.stopRecording()
		}
	}
}

// pixels views RGBA bytes as colours without copying.
func pixels(pix []uint8) []color.RGBA {
	if len(pix) < 4 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&pix[0])), len(pix)/4)
}

// Update handles input and renders the next scene frame. It reports
// whether the user asked to quit.
func (a *App) Update() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		a.switchTo(level.Next(a.stage.Level()))
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		a.switchTo(level.Prev(a.stage.Level()))
	case rl.IsKeyPressed(rl.KeyTab):
		a.control = (a.control + 1) % len(params.Ranges)
	case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL):
		a.nudge(1)
	case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH):
		a.nudge(-1)
	case rl.IsKeyPressed(rl.KeySpace):
		a.stage.Toggle()
	case rl.IsKeyPressed(rl.KeyR):
		if rl.IsKeyDown(rl.KeyLeftShift) {
			a.store.Reset()
		} else if err := a.stage.Reset(); err != nil {
			a.flash(err.Error())
		}
	case rl.IsKeyPressed(rl.KeyC):
		a.showCompanion = !a.showCompanion
	case rl.IsKeyPressed(rl.KeyG):
		if a.recorder != nil {
			a.stopRecording()
		} else {
			a.startRecording()
		}
	case rl.IsKeyPressed(rl.KeyP):
		a.screenshot()
	}
	a.handleMouse()

	a.queue.Step(time.Now())
	return false
}

func (a *App) switchTo(id int) {
	a.stopRecording()
	if err := a.stage.Switch(id); err != nil {
		a.flash(err.Error())
		return
	}
	a.luminance = a.luminance[:0]
}

func (a *App) nudge(dir int) {
	r := params.Ranges[a.control]
	v := a.store.Get().Field(r.Name)
	a.store.Set(params.Set(r.Name, r.Nudge(v, dir)))
}

func (a *App) flash(msg string) {
	a.status = msg
	a.statusUntil = time.Now().Add(4 * time.Second)
}

func (a *App) handleMouse() {
	m := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for _, lv := range level.All() {
			if rl.CheckCollisionPointRec(m, levelRect(lv.ID)) {
				a.switchTo(lv.ID)
				return
			}
		}
		for i := range params.Ranges {
			if rl.CheckCollisionPointRec(m, a.sliderHit(i)) {
				a.dragged, a.control = i, i
			}
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.dragged = -1
	}
	if a.dragged >= 0 {
		r := params.Ranges[a.dragged]
		track := a.sliderRect(a.dragged)
		ratio := (m.X - track.X) / track.Width
		v := r.Min + float64(ratio)*(r.Max-r.Min)
		a.store.Set(params.Set(r.Name, r.Snap(v)))
	}
}

func levelRect(id int) rl.Rectangle {
	return rl.NewRectangle(16, float32(70+id*30), sidebarWidth-32, 26)
}

func (a *App) sliderRect(i int) rl.Rectangle {
	x := float32(rl.GetScreenWidth() - controlsWidth + 30)
	return rl.NewRectangle(x, float32(110+i*70), sliderWidth, 4)
}

func (a *App) sliderHit(i int) rl.Rectangle {
	r := a.sliderRect(i)
	return rl.NewRectangle(r.X-8, r.Y-12, r.Width+16, r.Height+24)
}

func (a *App) startRecording() {
	lv, _, ok := a.stage.Active()
	if !ok {
		return
	}
	a.recorder = export.NewGIFRecorder(640, 6, export.DefaultMaxFrames)
	a.manifest = export.NewManifest(lv.ID, string(lv.Scene), a.cfg.Seed, a.store.Get())
	a.log.Info("recording started", "id", a.manifest.ID, "level", lv.ID)
}

func (a *App) stopRecording() {
	if a.recorder == nil {
		return
	}
	rec, man := a.recorder, a.manifest
	a.recorder, a.manifest = nil, nil
	if rec.Len() == 0 {
		return
	}
	path := filepath.Join(a.outDir, man.Name("phasetime", "gif"))
	if err := rec.Save(path); err != nil {
		a.log.Error("save recording", "err", err)
		a.flash(err.Error())
		return
	}
	man.Frames = rec.Len()
	man.Files = []string{filepath.Base(path)}
	if err := man.Write(strings.TrimSuffix(path, ".gif") + ".json"); err != nil {
		a.log.Warn("write manifest", "err", err)
	}
	a.flash("saved " + path)
	a.log.Info("recording saved", "path", path, "frames", man.Frames)
}

func (a *App) screenshot() {
	lv, _, ok := a.stage.Active()
	if !ok {
		return
	}
	man := export.NewManifest(lv.ID, string(lv.Scene), a.cfg.Seed, a.store.Get())
	path := filepath.Join(a.outDir, man.Name("phasetime", "png"))
	if err := export.WritePNG(path, a.stage.Surface().Image()); err != nil {
		a.flash(err.Error())
		return
	}
	a.flash(fmt.Sprintf("saved %s", path))
}
