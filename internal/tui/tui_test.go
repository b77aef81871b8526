package tui

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/logger"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	m := NewModel(Options{Config: cfg, Logger: logger.Discard(), OutDir: t.TempDir()})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule a tick")
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(m *Model, at time.Time) {
	m.Update(frameMsg(at))
}

func TestModelFrames(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()
	step(m, t0)
	step(m, t0.Add(100*time.Millisecond))

	if got := m.stage.Time(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected t=0.1, got %v", got)
	}
	if m.frames != 2 || len(m.history) != 2 {
		t.Errorf("expected 2 frames recorded, got %d/%d", m.frames, len(m.history))
	}
	if !strings.Contains(m.View(), "LEVELS") {
		t.Error("view should include the level sidebar")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()
	step(m, t0)

	m.Update(key("down"))
	if m.stage.Level() != 1 {
		t.Errorf("down should select level 1, got %d", m.stage.Level())
	}
	m.Update(key("up"))
	m.Update(key("up"))
	if m.stage.Level() != 13 {
		t.Errorf("up from 0 should wrap to 13, got %d", m.stage.Level())
	}
	m.Update(key("7"))
	if m.stage.Level() != 7 {
		t.Errorf("digit should jump to level 7, got %d", m.stage.Level())
	}

	m.Update(key("right"))
	if got := m.store.Get().Speed; math.Abs(got-1.1) > 1e-9 {
		t.Errorf("right should step speed to 1.1, got %v", got)
	}
	m.Update(key("tab"))
	m.Update(key("right"))
	if got := m.store.Get().Omega; math.Abs(got-0.25) > 1e-9 {
		t.Errorf("right on omega should give 0.25, got %v", got)
	}
	m.Update(key("R"))
	if m.store.Get().Omega != 0.2 {
		t.Error("R should restore default controls")
	}

	m.Update(key(" "))
	if !m.stage.Paused() {
		t.Error("space should pause")
	}
	m.Update(key(" "))
	if m.stage.Paused() {
		t.Error("space should resume")
	}

	m.Update(key("t"))
	if m.theme.Name != "ink" {
		t.Errorf("t should move to the next theme, got %s", m.theme.Name)
	}
	m.Update(key("c"))
	if !m.showCompanion || !strings.Contains(m.View(), "COMPANION") {
		t.Error("c should show the companion panel")
	}
	m.Update(key("?"))
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("? should show help")
	}
}

func TestModelRecording(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()
	m.Update(key("g"))
	if m.recorder == nil {
		t.Fatal("g should start recording")
	}
	for i := 0; i < 4; i++ {
		step(m, t0.Add(time.Duration(i)*50*time.Millisecond))
	}
	m.Update(key("g"))
	if m.recorder != nil {
		t.Fatal("second g should stop recording")
	}

	gifs, _ := filepath.Glob(filepath.Join(m.outDir, "*.gif"))
	manifests, _ := filepath.Glob(filepath.Join(m.outDir, "*.json"))
	if len(gifs) != 1 || len(manifests) != 1 {
		t.Errorf("expected one gif and one manifest, got %v %v", gifs, manifests)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWatch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level = 8
	cfg.Display.FPS = 50

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	if err := Watch(ctx, &buf, WatchOptions{Config: cfg, Cols: 30, Rows: 8, Logger: logger.Discard()}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "level 8") || !strings.Contains(out, "phasor") {
		t.Errorf("unexpected output: %q", out[:min(len(out), 200)])
	}
	if !strings.HasSuffix(out, showCursor) {
		t.Error("watch should restore the cursor")
	}
}
