package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const fieldSpan = 4 * math.Pi

// fieldSample returns the packet envelope and carrier phase at lattice
// coordinates (x, y), both in [0, 4π).
func fieldSample(x, y, t float64) (amp, phase float64) {
	px := math.Mod(t*0.5, fieldSpan)
	if px < 0 {
		px += fieldSpan
	}
	dist := math.Hypot(x-px, y-2*math.Pi)
	return math.Exp(-dist * 0.8), WrapPhase(x - t*1.5)
}

func drawField2D(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	mid := w / 2

	text(s, "DISCRETE OSCILLATORS", 16*d, 30*d, 13, false, ink, surface.AlignLeft)
	const gc, gr = 12, 8
	cw, ch := mid/(gc+1), h/(gr+1)
	for j := 0; j < gr; j++ {
		for i := 0; i < gc; i++ {
			cx, cy := cw*float64(i+1), ch*float64(j+1)
			amp, phase := fieldSample(float64(i)/gc*fieldSpan, float64(j)/gr*fieldSpan, t)
			r := 8 * d
			ring(s, cx, cy, r, 1, faint)
			l := r * 0.8 * amp
			px, py := cx+l*math.Cos(phase), cy+l*math.Sin(phase)
			c := surface.RGBA(0, 100, 200, 0.3+amp*0.7)
			line(s, cx, cy, px, py, 2, c)
			dot(s, px, py, 2*d, c)
		}
	}

	s.SetDash(5*d, 5*d)
	line(s, mid, 0, mid, h, 2, faint)
	s.SetDash()
	text(s, "→", mid, h*0.5, 20, false, grey, surface.AlignCenter)
	text(s, "continuum limit", mid, h*0.5+25*d, 12, false, grey, surface.AlignCenter)

	text(s, "CONTINUOUS FIELD", mid+16*d, 30*d, 13, false, ink, surface.AlignLeft)
	const cols, rows = 60, 40
	dx, dy := (w-mid)/cols, h/rows
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			amp, phase := fieldSample(float64(i)/cols*fieldSpan, float64(j)/rows*fieldSpan, t)
			v := amp * math.Sin(phase)
			s.SetFill(surface.HSL(200, (50+amp*50)/100, (125+v*100)/255))
			s.FillRect(mid+float64(i)*dx, float64(j)*dy, dx+1, dy+1)
		}
	}

	text(s, "Dense network → smooth field. Localized coherent excitation = 'particle'.",
		16*d, h-24*d, 14, false, ink, surface.AlignLeft)
}
