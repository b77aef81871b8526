package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const (
	networkNodes = 20
	nodeOmega    = 0.8
	// seconds of simulation time per measurement cycle
	measurePeriod = 8
)

type netNode struct {
	x, y, phi0 float64
}

type netEdge struct {
	a, b int
	w    float64
}

// entangledPair shares one phase reference.
var entangledPair = [2]int{5, 15}

var netNodes, netEdges = buildNetwork()

func buildNetwork() ([]netNode, []netEdge) {
	nodes := make([]netNode, networkNodes)
	for i := range nodes {
		a := float64(i) / networkNodes * tau
		nodes[i] = netNode{x: math.Cos(a), y: math.Sin(a), phi0: float64(i) / networkNodes * math.Pi * 0.5}
	}
	var edges []netEdge
	add := func(a, b int, w float64) {
		if a != b {
			edges = append(edges, netEdge{a, b, w})
		}
	}
	for i := 0; i < networkNodes; i++ {
		add(i, (i+1)%networkNodes, 0.8)
	}
	for k := 0; k < networkNodes; k += 3 {
		add(k, (k+7)%networkNodes, 0.4)
	}
	add(entangledPair[0], entangledPair[1], 1.0)
	return nodes, edges
}

func isEntangled(i int) bool { return i == entangledPair[0] || i == entangledPair[1] }

// NetworkPhases returns the wrapped phase of every node at time t. Entangled
// nodes read the reference phase instead of their own accumulator.
func NetworkPhases(t float64) []float64 {
	ref := WrapPhase(netNodes[0].phi0 + nodeOmega*t)
	out := make([]float64, len(netNodes))
	for i, n := range netNodes {
		if isEntangled(i) {
			out[i] = ref
			continue
		}
		out[i] = WrapPhase(n.phi0 + nodeOmega*t)
	}
	return out
}

// EdgeAlpha is the opacity of an edge of weight w at coupling c.
func EdgeAlpha(w, c float64) float64 {
	return surface.Clamp01(0.2 + 0.6*w*c)
}

func frac(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

func drawNetwork(s *surface.Surface, t float64, p params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, cy, R := w/2, h/2, math.Min(w, h)*0.35
	pos := func(i int) (float64, float64) { return cx + R*netNodes[i].x, cy + R*netNodes[i].y }

	for _, e := range netEdges {
		ax, ay := pos(e.a)
		bx, by := pos(e.b)
		ent := isEntangled(e.a) && isEntangled(e.b)

		s.SetAlpha(EdgeAlpha(e.w, p.Couple))
		if ent {
			line(s, ax, ay, bx, by, 2, red)
		} else {
			line(s, ax, ay, bx, by, 1.2, surface.Hex("#bbbbbb"))
		}
		s.SetAlpha(1)

		if p.Couple > 0.3 {
			f := frac(t*2 + float64(e.a)*0.5)
			c := surface.RGBA(52, 152, 219, 0.6)
			if ent {
				c = surface.RGBA(192, 57, 43, 0.8)
			}
			dot(s, ax+(bx-ax)*f, ay+(by-ay)*f, 3*d, c)
		}
	}

	phases := NetworkPhases(t)
	ref := phases[0]
	for i, phi := range phases {
		x, y := pos(i)
		hue := 200.0
		if math.Cos(phi-ref) > 0 {
			hue = 10
		}
		dot(s, x, y, 14*d, surface.HSL(hue, 0.7, 0.85))
		if isEntangled(i) {
			ring(s, x, y, 14*d, 3, red)
		} else {
			ring(s, x, y, 14*d, 1.5, surface.Hex("#333333"))
		}
		r := 10 * d
		x2, y2 := x+r*math.Cos(phi), y+r*math.Sin(phi)
		line(s, x, y, x2, y2, 2, ink)
		dot(s, x2, y2, 2.5*d, ink)
	}

	ex1, ey1 := pos(entangledPair[0])
	ex2, ey2 := pos(entangledPair[1])
	s.SetDash(5*d, 3*d)
	ring(s, ex1, ey1, 20*d, 2, surface.RGBA(192, 57, 43, 0.4))
	ring(s, ex2, ey2, 20*d, 2, surface.RGBA(192, 57, 43, 0.4))
	s.SetDash()

	cycle := math.Mod(t*0.5, measurePeriod)
	if cycle > measurePeriod*0.3 && cycle < measurePeriod*0.7 {
		hl := surface.RGBA(231, 76, 60, 0.2)
		s.SetFill(hl)
		s.FillRect(ex1-30*d, ey1-30*d, 60*d, 60*d)
		text(s, "MEASURED!", ex1, ey1-40*d, 11, true, red, surface.AlignCenter)
		s.SetFill(hl)
		s.FillRect(ex2-30*d, ey2-30*d, 60*d, 60*d)

		mx, my := (ex1+ex2)/2, (ey1+ey2)/2
		s.SetStroke(surface.Hex("#f39c12"))
		s.SetLineWidth(3 * d)
		s.Polyline([]surface.Point{{X: ex1, Y: ey1}, {X: mx - 10*d, Y: my}, {X: mx + 10*d, Y: my}, {X: ex2, Y: ey2}})
	}

	text(s, "Entangled nodes (red) rotate together. Measure one → partner instantly knows (no signal needed!)",
		w/2, h-20*d, 11, false, ink, surface.AlignCenter)
}
