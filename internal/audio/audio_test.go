package audio

import (
	"math"
	"testing"

	"github.com/san-kum/phasetime/internal/params"
)

func TestPitch(t *testing.T) {
	tests := []struct {
		omega float64
		want  float64
	}{
		{params.DefaultOmega, 1},
		{0.4, 2},
		{0.1, 0.5},
		{2, 4},
		{0.01, 0.25},
		{0, 0.25},
	}
	for _, tt := range tests {
		if got := Pitch(tt.omega); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Pitch(%v) = %v, want %v", tt.omega, got, tt.want)
		}
	}
}

func TestCutoff(t *testing.T) {
	if Cutoff(0) != 300 || Cutoff(1) != 1200 || Cutoff(5) != 1200 || Cutoff(-1) != 300 {
		t.Error("cutoff should span 300-1200 Hz and clamp")
	}
}

func TestProcessOffline(t *testing.T) {
	a := NewProcessor(0.5, nil)
	a.SetParams(params.Params{Speed: 1, Omega: 0.4, Couple: 1})
	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}

	for i := 0; i < 20; i++ {
		a.Process(out)
	}

	peak := 0.0
	for ch := range out {
		for _, v := range out[ch] {
			if math.IsNaN(float64(v)) {
				t.Fatal("NaN sample")
			}
			peak = math.Max(peak, math.Abs(float64(v)))
		}
	}
	if peak == 0 || peak > 1 {
		t.Errorf("peak %v outside (0,1]", peak)
	}
	lv := a.Levels()
	if lv.Bass <= 0 {
		t.Errorf("pad should register in the bass band, got %+v", lv)
	}
	if a.Active() {
		t.Error("processor should not be active without Start")
	}
	a.Stop()
}
