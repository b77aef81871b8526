// Package tui is the terminal front end: an interactive bubbletea app and a
// plain streaming watcher.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/phasetime/internal/audio"
	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/export"
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/stage"
	"github.com/san-kum/phasetime/internal/surface"
	"github.com/san-kum/phasetime/internal/viz"
)

const (
	sidebarWidth    = 30
	controlsWidth   = 36
	historyCapacity = 120
	// backing pixels per Braille dot
	dotPixels = 3
)

type frameMsg time.Time

// Options configures the interactive app.
type Options struct {
	Config *config.Config
	Store  *params.Store
	Audio  *audio.Processor
	Logger *slog.Logger
	// OutDir receives GIF recordings.
	OutDir string
}

// Model is the bubbletea model. It owns a Stage driven by a FrameQueue that
// is stepped on every tick, so scene rendering happens on the update
// goroutine.
type Model struct {
	cfg    *config.Config
	store  *params.Store
	queue  *clock.FrameQueue
	stage  *stage.Stage
	audio  *audio.Processor
	log    *slog.Logger
	outDir string

	canvas *viz.Canvas
	theme  viz.Theme
	styles viz.Styles

	width, height int
	control       int
	knobs         [3]struct{ pos, vel float64 }
	spring        harmonica.Spring

	history   []float64
	lastFrame time.Time
	fps       float64
	frames    int

	showHelp      bool
	showCompanion bool
	status        string

	recorder *export.GIFRecorder
	manifest *export.Manifest

	err error
}

func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	store := opts.Store
	if store == nil {
		store = params.NewStore(cfg.Params)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	theme := viz.GetTheme(cfg.Theme)
	m := &Model{
		cfg:    cfg,
		store:  store,
		queue:  clock.NewFrameQueue(),
		audio:  opts.Audio,
		log:    log,
		outDir: opts.OutDir,
		theme:  theme,
		styles: viz.NewStyles(theme),
		width:  120,
		height: 36,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.Display.FPS), 8.0, 0.7),
	}
	m.canvas = viz.NewCanvas(m.sceneSize())
	m.stage = stage.New(stage.Options{
		Scheduler: m.queue,
		Store:     store,
		Surface:   surface.New(m.viewport()),
		Seed:      cfg.Seed,
		Viewport:  m.viewport,
		OnFrame:   m.onFrame,
		Logger:    log,
	})
	p := store.Get()
	for i, r := range params.Ranges {
		m.knobs[i].pos = r.Ratio(p.Field(r.Name))
	}
	return m
}

// sceneSize is the scene panel interior in cells.
func (m *Model) sceneSize() (int, int) {
	w := m.width - sidebarWidth - controlsWidth - 6
	h := m.height - 9
	if m.showCompanion {
		h -= 8
	}
	return max(w, 20), max(h, 6)
}

func (m *Model) viewport() (int, int, float64) {
	cols, rows := m.sceneSize()
	return cols * 2 * dotPixels, rows * 4 * dotPixels, 1
}

func (m *Model) tick() tea.Cmd {
	fps := max(m.cfg.Display.FPS, 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	if err := m.stage.Mount(m.cfg.Level); err != nil {
		m.err = err
		return tea.Quit
	}
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas = m.canvas.Resize(m.sceneSize())
		return m, nil
	case frameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = m.fps*0.9 + 0.1/dt
			}
		}
		m.lastFrame = now
		m.queue.Step(now)
		m.animateKnobs()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopRecording()
		m.stage.Close()
		return tea.Quit
	case "up", "k":
		m.switchTo(level.Prev(m.stage.Level()))
	case "down", "j":
		m.switchTo(level.Next(m.stage.Level()))
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.switchTo(int(msg.String()[0] - '0'))
	case "tab":
		m.control = (m.control + 1) % len(params.Ranges)
	case "shift+tab":
		m.control = (m.control + len(params.Ranges) - 1) % len(params.Ranges)
	case "right", "l":
		m.nudge(1)
	case "left", "h":
		m.nudge(-1)
	case " ":
		if m.stage.Toggle() {
			m.status = "paused"
		} else {
			m.status = ""
		}
	case "r":
		if err := m.stage.Reset(); err != nil {
			m.status = err.Error()
		}
	case "R":
		m.store.Reset()
	case "c":
		m.showCompanion = !m.showCompanion
		m.canvas = m.canvas.Resize(m.sceneSize())
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
		m.styles = viz.NewStyles(m.theme)
	case "g":
		if m.recorder != nil {
			m.stopRecording()
		} else {
			m.startRecording()
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) switchTo(id int) {
	if _, ok := level.Get(id); !ok {
		return
	}
	m.stopRecording()
	if err := m.stage.Switch(id); err != nil {
		m.status = err.Error()
		return
	}
	m.history = m.history[:0]
}

func (m *Model) nudge(dir int) {
	r := params.Ranges[m.control]
	v := m.store.Get().Field(r.Name)
	m.store.Set(params.Set(r.Name, r.Nudge(v, dir)))
}

func (m *Model) animateKnobs() {
	p := m.store.Get()
	for i, r := range params.Ranges {
		k := &m.knobs[i]
		k.pos, k.vel = m.spring.Update(k.pos, k.vel, r.Ratio(p.Field(r.Name)))
	}
}

func (m *Model) onFrame(f stage.Frame) {
	m.frames++
	img := f.Surface.Image()
	m.canvas.FromImage(img, f.Surface.Background(), viz.DefaultThreshold)

	m.history = append(m.history, f.Surface.Luminance())
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}

	if m.recorder != nil && f.Index%2 == 0 {
		if err := m.recorder.Add(img); errors.Is(err, export.ErrRecording) {
			m.stopRecording()
		}
	}
}

func (m *Model) startRecording() {
	lv, _, ok := m.stage.Active()
	if !ok {
		return
	}
	m.recorder = export.NewGIFRecorder(480, 6, export.DefaultMaxFrames)
	m.manifest = export.NewManifest(lv.ID, string(lv.Scene), m.cfg.Seed, m.store.Get())
	m.status = "recording"
	m.log.Info("recording started", "id", m.manifest.ID, "level", lv.ID)
}

func (m *Model) stopRecording() {
	if m.recorder == nil {
		return
	}
	rec, man := m.recorder, m.manifest
	m.recorder, m.manifest = nil, nil
	if rec.Len() == 0 {
		m.status = ""
		return
	}
	path := filepath.Join(m.outDir, man.Name("phasetime", "gif"))
	if err := rec.Save(path); err != nil {
		m.status = err.Error()
		m.log.Error("save recording", "err", err)
		return
	}
	man.Frames = rec.Len()
	man.Duration = float64(rec.Len()) * 0.06
	man.Files = []string{filepath.Base(path)}
	if err := man.Write(strings.TrimSuffix(path, ".gif") + ".json"); err != nil {
		m.log.Warn("write manifest", "err", err)
	}
	m.status = "saved " + path
	m.log.Info("recording saved", "path", path, "frames", man.Frames)
}

// Err is the error that ended the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) View() string {
	lv, _, ok := m.stage.Active()
	if !ok {
		return ""
	}
	st := m.styles

	header := viz.GradientText(lv.Title, m.theme.Primary, m.theme.Accent) + "  " + st.Subtitle.Render(lv.Subtitle)

	cols, _ := m.sceneSize()
	scenePanel := st.Panel.Render(m.canvas.Render(m.theme))
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(lv.ID), scenePanel, m.viewControls())

	footer := lipgloss.NewStyle().Width(cols + sidebarWidth + controlsWidth).Render(
		st.Body.Render(lv.Description) + "\n" +
			st.Math.Render(prose(lv.Math)) + "\n" +
			st.Subtle.Render(lv.Link))

	out := []string{header, main, footer}
	if m.showCompanion {
		out = append(out, m.viewCompanion(lv))
	}
	out = append(out, st.KeyHint.Render("↑↓ level  tab control  ←→ adjust  space pause  r reset  c companion  t theme  g record  ? help  q quit"))
	view := lipgloss.JoinVertical(lipgloss.Left, out...)
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, helpText(st), view)
	}
	return view
}

func (m *Model) viewSidebar(active int) string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Header.Render("LEVELS") + "\n")
	for _, lv := range level.All() {
		title := truncate(lv.Title, sidebarWidth-4)
		if lv.ID == active {
			b.WriteString(st.Selected.Render("▸ "+title) + "\n")
		} else {
			b.WriteString(st.Subtle.Render("  "+title) + "\n")
		}
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
}

func (m *Model) viewControls() string {
	st := m.styles
	p := m.store.Get()
	var b strings.Builder

	b.WriteString(st.Header.Render("CONTROLS") + "\n")
	for i, r := range params.Ranges {
		label := st.Label.Render(r.Name)
		if i == m.control {
			label = st.Selected.Width(8).Render(r.Name)
		}
		fmt.Fprintf(&b, "%s %s %s\n", label, viz.Slider(m.knobs[i].pos, 16, st), st.Value.Render(fmt.Sprintf("%.2f", p.Field(r.Name))))
	}
	b.WriteString("\n" + viz.Dial(2*math.Pi*p.Omega*m.stage.Time(), 8) + "\n")

	b.WriteString("\n" + m.viewStatus() + "\n")
	fmt.Fprintf(&b, "%s %s\n", st.Label.Render("t"), st.Value.Render(fmt.Sprintf("%.2fs", m.stage.Time())))
	fmt.Fprintf(&b, "%s %s\n", st.Label.Render("fps"), st.Value.Render(fmt.Sprintf("%.0f", m.fps)))
	if m.audio != nil && m.audio.Active() {
		lv := m.audio.Levels()
		fmt.Fprintf(&b, "%s %s\n", st.Label.Render("audio"), viz.SparklineChart([]float64{lv.Bass, lv.Mid, lv.High}, 3, st))
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(controlsWidth-12),
			asciigraph.Precision(3),
			asciigraph.Caption("luminance"))
		b.WriteString("\n" + st.Subtle.Render(chart) + "\n")
	}
	return lipgloss.NewStyle().Width(controlsWidth).PaddingLeft(1).Render(b.String())
}

func (m *Model) viewStatus() string {
	st := m.styles
	switch {
	case m.recorder != nil:
		return st.StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len()))
	case m.stage.Paused():
		return st.StatusPaused.Render("❚❚ PAUSED")
	case m.status != "":
		return st.Subtle.Render(truncate(m.status, controlsWidth-2))
	}
	return st.StatusRunning.Render(viz.AnimatedSpinner(m.frames/4) + " RUNNING")
}

func (m *Model) viewCompanion(lv level.Level) string {
	st := m.styles
	c := lv.Companion
	body := st.Selected.Render("Problem ") + st.Body.Render(prose(c.Problem)) + "\n\n" +
		st.Selected.Render("Idea ") + st.Body.Render(prose(c.Idea)) + "\n\n" +
		st.Selected.Render("Bridge ") + st.Body.Render(prose(c.Bridge))
	return viz.BoxWithTitle("COMPANION", body, m.width-4, st)
}

func helpText(st viz.Styles) string {
	keys := [][2]string{
		{"↑/↓ k/j", "previous / next level"},
		{"0-9", "jump to level"},
		{"tab", "select control"},
		{"←/→ h/l", "adjust control by one step"},
		{"space", "pause / resume"},
		{"r", "restart scene"},
		{"R", "reset controls"},
		{"c", "companion notes"},
		{"t", "cycle theme"},
		{"g", "start / stop GIF recording"},
		{"?", "toggle help"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %s\n", st.Value.Width(10).Render(k[0]), st.Body.Render(k[1]))
	}
	return viz.BoxWithTitle("KEYS", b.String(), 48, st)
}

// prose strips the markdown and TeX delimiters the catalog uses.
func prose(s string) string {
	return strings.NewReplacer("**", "", "$$", "", "$", "", "\\text", "", "\\", "").Replace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// Run starts the full-screen app and blocks until it quits.
func Run(opts Options) error {
	m := NewModel(opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return m.Err()
}
