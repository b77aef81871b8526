package scene

import (
	"bytes"
	"math"
	"testing"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

func frame(sc Scene, t float64, p params.Params) []byte {
	s := surface.New(160, 100, 1)
	s.Clear()
	sc.Render(s, t, p)
	return append([]byte(nil), s.Image().Pix...)
}

func TestRegistryHasEveryKind(t *testing.T) {
	r := NewRegistry()
	kinds := r.Kinds()
	if len(kinds) != 19 {
		t.Fatalf("expected 19 kinds, got %d", len(kinds))
	}
	for _, k := range kinds {
		if got := r.New(k, Options{Seed: 1}).Kind(); got != k {
			t.Errorf("factory for %s built %s", k, got)
		}
	}
}

func TestRegistryUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown kind")
		}
	}()
	NewRegistry().New("nope", Options{})
}

func TestRegistryParse(t *testing.T) {
	r := NewRegistry()
	if k, err := r.Parse("phasor"); err != nil || k != Phasor {
		t.Errorf("Parse(phasor) = %q, %v", k, err)
	}
	if _, err := r.Parse("nope"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestStatelessScenesAreIdempotent(t *testing.T) {
	r := NewRegistry()
	p := params.Default()
	for _, k := range r.Kinds() {
		sc := r.New(k, Options{Seed: 7})
		if IsStateful(sc) {
			continue
		}
		for _, tm := range []float64{0, 1.37, 250} {
			if !bytes.Equal(frame(sc, tm, p), frame(sc, tm, p)) {
				t.Errorf("%s: two renders at t=%v differ", k, tm)
			}
		}
	}
}

func TestStatefulScenesReplayFromSeed(t *testing.T) {
	p := params.Default()
	for _, k := range []Kind{ArrowOfTime, PathIntegral} {
		a := NewRegistry().New(k, Options{Seed: 42})
		b := NewRegistry().New(k, Options{Seed: 42})
		if !IsStateful(a) {
			t.Errorf("%s should be stateful", k)
		}
		for _, tm := range []float64{0, 0.5, 1.25, 3} {
			if !bytes.Equal(frame(a, tm, p), frame(b, tm, p)) {
				t.Errorf("%s: seeded instances diverged at t=%v", k, tm)
			}
		}
	}
}

func TestScenesSurviveLongRuns(t *testing.T) {
	r := NewRegistry()
	p := params.Params{Speed: 3, Omega: 2, Couple: 1}
	for _, k := range r.Kinds() {
		frame(r.New(k, Options{Seed: 3}), 1e7, p)
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi / 2, 1.5 * math.Pi},
		{tau, 0},
		{5 * tau, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := WrapPhase(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrapPhaseInvariance(t *testing.T) {
	for _, phi := range []float64{0.1, 1, 2.5, 6} {
		base := WrapPhase(phi)
		for k := -3; k <= 3; k++ {
			got := WrapPhase(phi + float64(k)*tau)
			if math.Abs(got-base) > 1e-9 {
				t.Errorf("phase %v shifted by %d turns: %v vs %v", phi, k, got, base)
			}
		}
	}
}

func TestEntangledPairStaysInPhase(t *testing.T) {
	for _, tm := range []float64{0, 0.3, 17, 1e4, 1e8} {
		ph := NetworkPhases(tm)
		if ph[5] != ph[0] || ph[15] != ph[0] {
			t.Errorf("t=%v: entangled phases %v %v, reference %v", tm, ph[5], ph[15], ph[0])
		}
		for i, v := range ph {
			if v < 0 || v >= tau {
				t.Errorf("t=%v: node %d phase %v out of range", tm, i, v)
			}
		}
	}
}

func TestDerivedAlphasClamp(t *testing.T) {
	for _, c := range []float64{0, 0.5, 1} {
		for _, w := range []float64{0.4, 0.8, 1} {
			if a := EdgeAlpha(w, c); a < 0 || a > 1 {
				t.Errorf("EdgeAlpha(%v,%v) = %v", w, c, a)
			}
		}
	}
	for _, tm := range []float64{0, 1, 1e6, 1e12} {
		for idx := range spinEdges {
			if a := SpinEdgeAlpha(tm, idx); a < 0.3-1e-12 || a > 0.7+1e-12 {
				t.Errorf("SpinEdgeAlpha(%v,%d) = %v", tm, idx, a)
			}
		}
		for r := 0.0; r < 60; r += 3 {
			if a := packetAlpha(r, 60, r*0.1-tm); a < 0 || a > 1 {
				t.Errorf("packetAlpha at r=%v t=%v: %v", r, tm, a)
			}
		}
	}
}

func TestArrowParticlesStayInBox(t *testing.T) {
	a := NewArrowOfTime(Options{Seed: 11})
	for i := 0; i < 5000; i++ {
		a.Step(0.5)
	}
	for i, p := range a.Particles() {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Errorf("particle %d escaped: %+v", i, p)
		}
	}
	l, r := a.Counts()
	if l+r != arrowParticles {
		t.Errorf("counts %d+%d do not cover the ensemble", l, r)
	}
}

func TestArrowRenderAtSameTimeDoesNotMove(t *testing.T) {
	a := NewArrowOfTime(Options{Seed: 5})
	s := surface.New(80, 60, 1)
	a.Render(s, 2, params.Default())
	before := a.Particles()
	a.Render(s, 2, params.Default())
	after := a.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d moved without time passing", i)
		}
	}
}

func TestEntropy(t *testing.T) {
	if got := Entropy(15, 15); math.Abs(got-math.Ln2) > 1e-12 {
		t.Errorf("equal split entropy %v, want ln 2", got)
	}
	if got := Entropy(30, 0); math.Abs(got) > 1e-12 {
		t.Errorf("all-left entropy %v, want 0", got)
	}
	if got := Entropy(0, 0); got != 0 {
		t.Errorf("empty entropy %v", got)
	}
}

func TestPathEnsemble(t *testing.T) {
	a := NewPathIntegral(Options{Seed: 9})
	b := NewPathIntegral(Options{Seed: 9})
	if len(a.Paths()) != ensembleSize {
		t.Fatalf("expected %d paths, got %d", ensembleSize, len(a.Paths()))
	}
	best := math.Abs(a.Paths()[a.Classical()].Action)
	for i, p := range a.Paths() {
		if len(p.Xs) != ensembleSteps || p.Xs[0] != pathStart || p.Xs[len(p.Xs)-1] != pathEnd {
			t.Errorf("path %d has wrong shape or endpoints", i)
		}
		if p.Action != b.Paths()[i].Action {
			t.Errorf("path %d differs between equal seeds", i)
		}
		if math.Abs(p.Action) < best {
			t.Errorf("path %d has smaller |S| than the classical pick", i)
		}
	}
	x, y := a.Resultant()
	if math.Hypot(x, y) > ensembleSize+1e-9 {
		t.Errorf("resultant longer than ensemble: %v", math.Hypot(x, y))
	}
}

func TestEntanglementFallsOffAroundRing(t *testing.T) {
	if got := Entanglement(0, 1); math.Abs(got-1/1.5) > 1e-12 {
		t.Errorf("neighbour bond %v", got)
	}
	if Entanglement(0, 11) != Entanglement(0, 1) {
		t.Error("ring distance should wrap")
	}
	if got := Entanglement(0, 6); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("opposite bond %v", got)
	}
}

func TestMeasurementCycle(t *testing.T) {
	if Collapsed(0) {
		t.Error("cycle should start before measurement")
	}
	if !Collapsed(11) {
		t.Error("t=11 should be after measurement")
	}
	if Collapsed(20.5) {
		t.Error("t=20.5 should be back before measurement")
	}
}

func TestSplitHalf(t *testing.T) {
	a, b := splitHalf("Physics same everywhere")
	if a != "Physics same" || b != "everywhere" {
		t.Errorf("got %q / %q", a, b)
	}
}
