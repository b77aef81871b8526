package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const (
	wavePhasors = 48
	waveOmega   = 1.2
)

// psi evaluates two overlapping wave packets at backing coordinate x.
func psi(x, t, w, innerW float64) (re, im float64) {
	k1 := tau / (innerW / 6)
	k2 := tau / (innerW / 5.5)
	g := func(c float64) float64 {
		u := (x - w*c) / (innerW * 0.15)
		return math.Exp(-u * u)
	}
	a1, a2 := g(0.35), g(0.65)
	ph1 := WrapPhase(k1*x - waveOmega*t + 0.4*math.Sin(0.3*x) + k2*x*0.2)
	ph2 := WrapPhase(k2*x + waveOmega*0.8*t + 0.2*math.Cos(0.25*x))
	return a1*math.Cos(ph1) + a2*math.Cos(ph2), a1*math.Sin(ph1) + a2*math.Sin(ph2)
}

func drawWave1D(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	margin := 40 * d
	innerW, innerH := w-2*margin, h-2*margin
	mid := h / 2

	env := make([]surface.Point, wavePhasors)
	for i := 0; i < wavePhasors; i++ {
		x := margin + float64(i)/(wavePhasors-1)*innerW
		re, im := psi(x, t, w, innerW)
		mag := math.Hypot(re, im) + 1e-6
		ang := math.Atan2(im, re)
		l := innerH * 0.35 * (mag / 1.2)
		x2, y2 := x+l*math.Cos(ang), mid-l*math.Sin(ang)
		line(s, x, mid, x2, y2, 1, surface.Hex("#bbbbbb"))
		dot(s, x2, y2, 2.5*d, ink)
		env[i] = surface.Pt(x, mid-innerH*0.4*math.Min(1.2, re*re+im*im))
	}
	s.SetStroke(ink)
	s.SetLineWidth(2 * d)
	s.Polyline(env)

	text(s, "Row of phasors ψ(x). Angle = phase; length ∝ |ψ|.", margin, margin*0.7, 14, false, ink, surface.AlignLeft)
	text(s, "Bold curve ≈ |ψ|^2 envelope (toy)", margin, h-margin*0.5, 14, false, ink, surface.AlignLeft)
}
