package scene

import (
	"math"
	"strconv"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

var approaches = []struct {
	name, desc string
	x          float64
}{
	{"String Theory", "1D strings in 10D", 0.2},
	{"Loop QG", "Spacetime loops", 0.5},
	{"Emergent Gravity", "From entanglement", 0.8},
}

func drawQuantumGravity(s *surface.Surface, _ float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	s.SetBaseline(surface.BaselineMiddle)
	text(s, "?", w/2, h/2, 100, true, surface.RGBA(0, 0, 0, 0.1), surface.AlignCenter)

	bw, bh := w*0.15, h*0.15
	for _, a := range approaches {
		px, py := w*a.x, h*0.3
		s.SetFill(surface.RGBA(52, 152, 219, 0.1))
		s.FillRect(px-bw/2, py-bh/2, bw, bh)
		s.SetStroke(surface.Hex("#3498DB"))
		s.SetLineWidth(2 * d)
		s.StrokeRect(px-bw/2, py-bh/2, bw, bh)
		text(s, a.name, px, py, 12, false, ink, surface.AlignCenter)
		text(s, a.desc, px, py+20*d, 10, false, ink, surface.AlignCenter)
	}

	ey := h * 0.65
	text(s, "G_μν = 8πG T_μν", w/2, ey, 16, false, ink, surface.AlignCenter)
	text(s, "(geometry) = (quantum matter)", w/2, ey+25*d, 11, false, ink, surface.AlignCenter)
	text(s, "! Mismatch: left=classical, right=quantum", w/2, ey+45*d, 11, false, ink, surface.AlignCenter)

	text(s, "Hints: black hole entropy ~ area", w/2, h*0.8, 11, false, grey, surface.AlignCenter)
	text(s, "Holography: 3D physics ↔ 2D boundary", w/2, h*0.8+20*d, 11, false, grey, surface.AlignCenter)

	text(s, "THE FRONTIER. No experimental evidence yet. Maybe spacetime emerges from entanglement.",
		16*d, h-24*d, 14, false, ink, surface.AlignLeft)
}

var stringModes = []string{"Graviton (spin-2)", "Photon (spin-1)", "Scalar"}

func drawStringTheory(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, cy := w/2, h/2
	dark := surface.Hex("#333333")

	text(s, "STRING THEORY: Vibrating 1D Objects", cx, 30*d, 16, false, dark, surface.AlignCenter)

	sw, gap := w*0.6, h*0.2
	const n = 100
	for k := range stringModes {
		y := cy - gap + float64(k)*gap
		phase := WrapPhase(t*0.5 + float64(k)*math.Pi*0.7)
		freq := float64(2 + k)
		amp := 20 * d * (1 + float64(k)*0.3)

		pts := make([]surface.Point, n+1)
		for i := range pts {
			f := float64(i) / n
			pts[i] = surface.Pt(cx-sw/2+f*sw, y+amp*math.Sin(f*math.Pi*freq+phase))
		}
		s.SetStroke(surface.HSL(200+float64(k)*40, 0.7, 0.5))
		s.SetLineWidth(3 * d)
		s.Polyline(pts)
		text(s, stringModes[k], cx+sw/2+10*d, y, 12, false, grey, surface.AlignLeft)
	}

	text(s, "10D spacetime (9 space + 1 time)", cx, h-50*d, 14, false, dark, surface.AlignCenter)
	text(s, "6 extra dimensions compactified at Planck scale", cx, h-30*d, 14, false, dark, surface.AlignCenter)
}

var (
	spinEdges = [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 5}, {1, 5}, {2, 5}}
	spinJ     = []float64{0.5, 1, 1.5, 1, 0.5, 1, 1.5, 1}
)

// SpinEdgeAlpha is the pulsing opacity of spin network edge idx.
func SpinEdgeAlpha(t float64, idx int) float64 {
	pulse := math.Sin(WrapPhase(t*0.3+float64(idx)))*0.5 + 0.5
	return surface.Clamp01(0.3 + pulse*0.4)
}

func drawLoopQG(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, cy := w/2, h/2
	dark := surface.Hex("#333333")

	text(s, "LOOP QUANTUM GRAVITY: Spin Networks", cx, 30*d, 16, false, dark, surface.AlignCenter)

	nodes := []surface.Point{
		{X: cx, Y: cy - 80*d},
		{X: cx - 100*d, Y: cy},
		{X: cx + 100*d, Y: cy},
		{X: cx - 60*d, Y: cy + 80*d},
		{X: cx + 60*d, Y: cy + 80*d},
		{X: cx, Y: cy + 20*d},
	}
	for idx, e := range spinEdges {
		a, b := nodes[e[0]], nodes[e[1]]
		line(s, a.X, a.Y, b.X, b.Y, 2+spinJ[idx]*2, surface.RGBA(52, 152, 219, SpinEdgeAlpha(t, idx)))
		label := "j=" + strconv.FormatFloat(spinJ[idx], 'f', -1, 64)
		text(s, label, (a.X+b.X)/2, (a.Y+b.Y)/2-5*d, 10, false, surface.Hex("#2980b9"), surface.AlignCenter)
	}
	for _, n := range nodes {
		dot(s, n.X, n.Y, 6*d, surface.Hex("#2c3e50"))
	}

	text(s, "Area & volume are quantized: A ~ ℓ_P²", cx, h-50*d, 13, false, dark, surface.AlignCenter)
	text(s, "No background spacetime - geometry IS the quantum field", cx, h-30*d, 13, false, dark, surface.AlignCenter)
}
