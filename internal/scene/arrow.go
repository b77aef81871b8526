package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const (
	arrowParticles = 30
	// particles were tuned as per-frame steps at 60 frames per second
	arrowFrameRate = 60
)

type Particle struct {
	X, Y, VX, VY float64
}

// ArrowOfTimeScene bounces particles in a unit box and compares the exact
// microstate with the coarse left/right macrostate.
type ArrowOfTimeScene struct {
	particles []Particle
	lastT     float64
	started   bool
}

func NewArrowOfTime(opts Options) *ArrowOfTimeScene {
	rng := newRand(opts.Seed)
	ps := make([]Particle, arrowParticles)
	for i := range ps {
		ps[i] = Particle{
			X:  0.3 + rng.Float64()*0.1,
			Y:  0.3 + rng.Float64()*0.4,
			VX: (rng.Float64() - 0.5) * 0.002,
			VY: (rng.Float64() - 0.5) * 0.002,
		}
	}
	return &ArrowOfTimeScene{particles: ps}
}

func (a *ArrowOfTimeScene) Kind() Kind     { return ArrowOfTime }
func (a *ArrowOfTimeScene) Stateful() bool { return true }

// Particles returns a copy of the current Particle state.
func (a *ArrowOfTimeScene) Particles() []Particle {
	return append([]Particle(nil), a.particles...)
}

// Step advances the particles by dt of simulation time.
func (a *ArrowOfTimeScene) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		return
	}
	k := dt * arrowFrameRate
	for i := range a.particles {
		p := &a.particles[i]
		p.X += p.VX * k
		p.Y += p.VY * k
		if p.X < 0 || p.X > 1 {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > 1 {
			p.VY = -p.VY
		}
		p.X = surface.Clamp01(p.X)
		p.Y = surface.Clamp01(p.Y)
	}
}

// Counts returns how many particles sit in each half of the box.
func (a *ArrowOfTimeScene) Counts() (left, right int) {
	for _, p := range a.particles {
		if p.X < 0.5 {
			left++
		} else {
			right++
		}
	}
	return left, right
}

// Entropy is the coarse-grained two-cell entropy in units of k_B.
func Entropy(left, right int) float64 {
	n := float64(left + right)
	if n == 0 {
		return 0
	}
	pl, pr := float64(left)/n, float64(right)/n
	return -(pl*math.Log(math.Max(0.01, pl)) + pr*math.Log(math.Max(0.01, pr)))
}

func (a *ArrowOfTimeScene) Render(s *surface.Surface, t float64, _ params.Params) {
	if a.started {
		a.Step(t - a.lastT)
	}
	a.lastT, a.started = t, true

	w, h, d := s.W(), s.H(), s.DPR()
	text(s, "ARROW OF TIME: Reversible Micro → Irreversible Macro", w/2, 25*d, 14, true, ink, surface.AlignCenter)

	bw, bh := w*0.4, h*0.5
	lx, rx, by := w*0.05, w*0.55, h*0.15

	blue, orange, red2 := surface.Hex("#3498db"), surface.Hex("#e67e22"), surface.Hex("#e74c3c")

	s.SetStroke(blue)
	s.SetLineWidth(2 * d)
	s.StrokeRect(lx, by, bw, bh)
	text(s, "MICROSTATE", lx+bw/2, by-10*d, 12, false, ink, surface.AlignCenter)
	text(s, "(exact positions)", lx+bw/2, by-25*d, 9, false, grey, surface.AlignCenter)

	for _, p := range a.particles {
		px, py := lx+p.X*bw, by+p.Y*bh
		dot(s, px, py, 3*d, red2)
		line(s, px, py, px+p.VX*5000*d, py+p.VY*5000*d, 1, surface.Hex("#95a5a6"))
	}
	text(s, "Dynamics: REVERSIBLE", lx+bw/2, by+bh+15*d, 9, false, grey, surface.AlignCenter)
	text(s, "(reverse all velocities → goes backward)", lx+bw/2, by+bh+28*d, 9, false, grey, surface.AlignCenter)

	s.SetStroke(orange)
	s.SetLineWidth(2 * d)
	s.StrokeRect(rx, by, bw, bh)
	s.SetDash(5*d, 5*d)
	line(s, rx+bw/2, by, rx+bw/2, by+bh, 1, surface.Hex("#cccccc"))
	s.SetDash()
	text(s, "MACROSTATE", rx+bw/2, by-10*d, 12, false, ink, surface.AlignCenter)
	text(s, "(coarse-grained: L vs R)", rx+bw/2, by-25*d, 9, false, grey, surface.AlignCenter)

	left, right := a.Counts()
	n := float64(len(a.particles))
	barW, maxH := bw*0.35, bh*0.8
	lh, rh := float64(left)/n*maxH, float64(right)/n*maxH
	s.SetAlpha(0.5)
	s.SetFill(blue)
	s.FillRect(rx+bw*0.15, by+maxH-lh+bh*0.1, barW, lh)
	s.SetFill(red2)
	s.FillRect(rx+bw*0.5, by+maxH-rh+bh*0.1, barW, rh)
	s.SetAlpha(1)

	text(s, fmt.Sprintf("L: %d", left), rx+bw*0.325, by+bh-10*d, 11, false, ink, surface.AlignCenter)
	text(s, fmt.Sprintf("R: %d", right), rx+bw*0.675, by+bh-10*d, 11, false, ink, surface.AlignCenter)
	text(s, fmt.Sprintf("S = %.2f k_B", Entropy(left, right)), rx+bw/2, by+bh+20*d, 13, true, orange, surface.AlignCenter)

	switch {
	case left > right+3:
		text(s, "→ S increases (spreading)", rx+bw/2, by+bh+35*d, 11, false, red, surface.AlignCenter)
	case left-right < 4 && right-left < 4:
		text(s, "Equilibrium (max S)", rx+bw/2, by+bh+35*d, 11, false, surface.Hex("#27ae60"), surface.AlignCenter)
	}

	text(s, "Aha! Micro-laws are reversible, but MACRO-evolution (L→R count) is irreversible because there are vastly more high-S states.",
		w/2, h-20*d, 11, false, ink, surface.AlignCenter)
}
