package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const (
	ensembleSize  = 50
	ensembleSteps = 40
	pathStart     = -1.2
	pathEnd       = 1.2
	pathDuration  = 1.6
	pathMass      = 1.0
)

// potential is a tilted double well.
func potential(x float64) float64 {
	q := x*x - 1
	return 0.5*q*q + 0.15*math.Cos(3*x)
}

type Path struct {
	Xs     []float64
	Action float64
}

// PathIntegralScene samples a fixed ensemble of random paths between two
// endpoints and shows their phasors adding up.
type PathIntegralScene struct {
	paths     []Path
	classical int
}

func NewPathIntegral(opts Options) *PathIntegralScene {
	rng := newRand(opts.Seed)
	dt := pathDuration / (ensembleSteps - 1)
	drift := (pathEnd - pathStart) / ensembleSteps

	paths := make([]Path, ensembleSize)
	for i := range paths {
		xs := make([]float64, 0, ensembleSteps)
		xs = append(xs, pathStart)
		for k := 1; k < ensembleSteps-1; k++ {
			xs = append(xs, xs[k-1]+drift+0.12*(rng.Float64()-0.5))
		}
		xs = append(xs, pathEnd)
		paths[i] = Path{Xs: xs, Action: action(xs, dt)}
	}

	sc := &PathIntegralScene{paths: paths}
	for i, p := range paths {
		if math.Abs(p.Action) < math.Abs(paths[sc.classical].Action) {
			sc.classical = i
		}
	}
	return sc
}

// action integrates the Lagrangian along xs with the midpoint rule.
func action(xs []float64, dt float64) float64 {
	var s float64
	for k := 1; k < len(xs); k++ {
		dx := xs[k] - xs[k-1]
		v := dx / dt
		s += (0.5*pathMass*v*v - potential(0.5*(xs[k]+xs[k-1]))) * dt
	}
	return s
}

func (p *PathIntegralScene) Kind() Kind     { return PathIntegral }
func (p *PathIntegralScene) Stateful() bool { return true }

func (p *PathIntegralScene) Paths() []Path { return p.paths }

// Classical is the index of the path with the smallest |action|.
func (p *PathIntegralScene) Classical() int { return p.classical }

// Resultant sums unit phasors e^{iS} over the ensemble.
func (p *PathIntegralScene) Resultant() (x, y float64) {
	for _, path := range p.paths {
		phi := WrapPhase(path.Action)
		x += math.Cos(phi)
		y += math.Sin(phi)
	}
	return x, y
}

func actionHue(s float64) float64 { return WrapPhase(s) / tau * 360 }

func (p *PathIntegralScene) Render(s *surface.Surface, _ float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	mainW := w * 0.7
	base := h * 0.78

	curve := make([]surface.Point, 0, int(mainW)+1)
	for i := 0.0; i < mainW; i++ {
		x := i/mainW*4 - 2
		curve = append(curve, surface.Pt(i, base-potential(x)*80*d))
	}
	s.SetStroke(surface.Hex("#bbbbbb"))
	s.SetLineWidth(d)
	s.Polyline(curve)

	trace := func(xs []float64) []surface.Point {
		pts := make([]surface.Point, len(xs))
		for k, x := range xs {
			pts[k] = surface.Pt(float64(k)/float64(len(xs)-1)*mainW, base-potential(x)*80*d-100*d)
		}
		return pts
	}

	s.SetLineWidth(1.2 * d)
	for i, path := range p.paths {
		if i == p.classical {
			continue
		}
		s.SetStroke(surface.HSLA(actionHue(path.Action), 1, 0.5, 0.3))
		s.Polyline(trace(path.Xs))
	}
	s.SetStroke(surface.Hex("#27ae60"))
	s.SetLineWidth(4 * d)
	s.Polyline(trace(p.paths[p.classical].Xs))

	pcx, pcy, pr := w*0.85, h*0.45, math.Min(w, h)*0.12
	text(s, "Phasor Sum", pcx, pcy-pr-20*d, 12, false, ink, surface.AlignCenter)
	ring(s, pcx, pcy, pr, 1, surface.Hex("#dddddd"))

	scale := pr / (float64(len(p.paths)) * 0.3)
	var sx, sy float64
	for _, path := range p.paths {
		phi := WrapPhase(path.Action)
		dx, dy := scale*math.Cos(phi), scale*math.Sin(phi)
		line(s, pcx+sx, pcy+sy, pcx+sx+dx, pcy+sy+dy, 1, surface.HSLA(actionHue(path.Action), 1, 0.5, 0.3))
		sx += dx
		sy += dy
	}
	line(s, pcx, pcy, pcx+sx, pcy+sy, 3, red)
	dot(s, pcx+sx, pcy+sy, 4*d, red)
	text(s, "= Net amplitude", pcx, pcy+pr+30*d, 10, false, grey, surface.AlignCenter)

	green := surface.Hex("#27ae60")
	text(s, "← Green = Classical path", mainW*0.6, h*0.2, 12, true, green, surface.AlignCenter)
	text(s, "(stationary action)", mainW*0.6, h*0.2+18*d, 10, false, green, surface.AlignCenter)
	text(s, "Aha! Paths with wildly different S have oscillating phases → cancel. Near-classical paths reinforce.",
		16*d, h-24*d, 11, false, ink, surface.AlignLeft)
}
