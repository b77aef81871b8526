package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/phasetime/internal/analysis"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
)

func series() *analysis.Series {
	return &analysis.Series{
		Kind:   scene.Phasor,
		Dt:     0.5,
		Times:  []float64{0, 0.5, 1, 1.5},
		Values: []float64{0.9, 0.8, 0.9, 0.8},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p := params.Params{Speed: 2, Omega: 0.4, Couple: 0.1}
	runID, err := st.Save(series(), 8, 42, p)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != string(scene.Phasor) {
		t.Errorf("kind = %q, want %q", meta.Kind, scene.Phasor)
	}
	if meta.Level != 8 || meta.Seed != 42 {
		t.Errorf("level/seed = %d/%d, want 8/42", meta.Level, meta.Seed)
	}
	if meta.Params != p {
		t.Errorf("params = %+v, want %+v", meta.Params, p)
	}
	if meta.Duration != 2 {
		t.Errorf("duration = %v, want 2", meta.Duration)
	}

	got, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", got.Len())
	}
	if got.Values[1] != 0.8 || got.Times[3] != 1.5 {
		t.Errorf("unexpected samples: %v %v", got.Times, got.Values)
	}
	if got.Kind != scene.Phasor || got.Dt != 0.5 {
		t.Errorf("series header = %s/%v", got.Kind, got.Dt)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(series(), -1, int64(i+1), params.Default()); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	// junk directories are skipped
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0o755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsEmpty(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Save(&analysis.Series{}, 0, 0, params.Default()); err == nil {
		t.Error("expected an error for an empty series")
	}
}
