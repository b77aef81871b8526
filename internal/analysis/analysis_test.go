package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/phasetime/internal/scene"
)

func sine(freq, dt float64, n int) *Series {
	s := &Series{Dt: dt}
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		s.Times = append(s.Times, t)
		s.Values = append(s.Values, 0.5+0.2*math.Sin(2*math.Pi*freq*t))
	}
	return s
}

func TestDominant(t *testing.T) {
	tests := []struct {
		freq float64
		dt   float64
		n    int
	}{
		{2, 1.0 / 32, 256},
		{0.5, 0.1, 400},
		{5, 1.0 / 60, 600},
	}
	for _, tt := range tests {
		peak := Dominant(sine(tt.freq, tt.dt, tt.n))
		res := 1 / (float64(tt.n) * tt.dt)
		if math.Abs(peak.Freq-tt.freq) > res {
			t.Errorf("freq %v: dominant %v (resolution %v)", tt.freq, peak.Freq, res)
		}
		if peak.Power <= 0 {
			t.Errorf("freq %v: expected positive power", tt.freq)
		}
	}
}

func TestSpectrumFlatSignal(t *testing.T) {
	s := &Series{Dt: 0.1, Values: make([]float64, 64)}
	for i := range s.Values {
		s.Values[i] = 0.9
	}
	if p := Dominant(s); p.Power > 1e-12 {
		t.Errorf("constant signal should have no peak, got %+v", p)
	}
	if f, p := Spectrum([]float64{1}, 0.1); f != nil || p != nil {
		t.Error("single sample should give no spectrum")
	}
}

func TestBands(t *testing.T) {
	b := Bands([]float64{1, 1, 2, 2, 3, 3}, 3)
	if len(b) != 3 || b[0] != 2 || b[1] != 4 || b[2] != 6 {
		t.Errorf("unexpected bands %v", b)
	}
	if Bands(nil, 4) != nil {
		t.Error("empty power should give nil")
	}
}

func TestTrace(t *testing.T) {
	opts := Options{Width: 80, Height: 50, Duration: 1, Dt: 0.1}
	a, err := Trace(scene.Mystery, opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 10 || a.Kind != scene.Mystery {
		t.Fatalf("expected 10 samples of mystery, got %d of %s", a.Len(), a.Kind)
	}
	for i, v := range a.Values {
		if v <= 0 || v > 1 {
			t.Errorf("sample %d luminance %v out of range", i, v)
		}
	}
	if math.Abs(a.Times[9]-0.9) > 1e-9 {
		t.Errorf("times should be wall seconds, got %v", a.Times[9])
	}

	b, err := Trace(scene.Mystery, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("trace not reproducible at %d", i)
		}
	}

	if _, err := Trace(scene.Mystery, Options{Duration: 0.05, Dt: 0.1}); !errors.Is(err, ErrDuration) {
		t.Errorf("expected ErrDuration, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	pts, err := Sweep(scene.Phasor, "omega", 3, Options{Width: 60, Height: 40, Duration: 0.5, Dt: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if math.Abs(pts[0].Param-0.05) > 1e-9 || math.Abs(pts[2].Param-2) > 1e-9 {
		t.Errorf("sweep should span the omega range, got %v..%v", pts[0].Param, pts[2].Param)
	}
	if _, err := Sweep(scene.Phasor, "gravity", 3, Options{}); !errors.Is(err, ErrField) {
		t.Errorf("expected ErrField, got %v", err)
	}
}

func TestPortrait(t *testing.T) {
	p := NewPortrait(sine(1, 0.05, 100))
	if len(p.Points) != 98 {
		t.Errorf("expected 98 points, got %d", len(p.Points))
	}
	out := p.ASCII(40, 12)
	if strings.Count(out, "\n") != 12 || !strings.Contains(out, "•") {
		t.Errorf("unexpected plot:\n%s", out)
	}
	if NewPortrait(nil).ASCII(10, 10) != "" {
		t.Error("empty portrait should plot nothing")
	}
}
