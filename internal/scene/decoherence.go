package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

// screenColor maps an intensity in [0,1] onto the warm detector palette.
func screenColor(intensity float64) color.NRGBA {
	b := 100 + surface.Clamp01(intensity)*120
	return color.NRGBA{R: uint8(b), G: uint8(b * 0.8), B: uint8(b * 0.6), A: 255}
}

func drawDecoherence(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	mid := w / 2
	slitY := h * 0.3
	band := 3 * d

	text(s, "COHERENT", 16*d, 30*d, 13, false, ink, surface.AlignLeft)

	dark := surface.Hex("#333333")
	line(s, mid*0.2, slitY-60*d, mid*0.2, slitY-20*d, 3, dark)
	line(s, mid*0.2, slitY+20*d, mid*0.2, slitY+60*d, 3, dark)

	screenX := mid * 0.75
	drift := WrapPhase(t * 0.5)
	for y := 0.0; y < h; y += band {
		dy := y - slitY
		s.SetFill(screenColor(math.Max(0, math.Cos(dy/(h*0.08)*math.Pi+drift))))
		s.FillRect(screenX, y, mid*0.2, band)
	}

	s.SetDash(5*d, 5*d)
	line(s, mid, 0, mid, h, 2, faint)
	s.SetDash()

	text(s, "DECOHERED", mid+16*d, 30*d, 13, false, ink, surface.AlignLeft)

	peak1, peak2 := slitY-35*d, slitY+35*d
	screenX2 := mid + mid*0.55
	sigma := 800 * d * d
	for y := 0.0; y < h; y += band {
		d1, d2 := y-peak1, y-peak2
		g := math.Exp(-d1*d1/sigma) + math.Exp(-d2*d2/sigma)
		s.SetFill(screenColor(g))
		s.FillRect(screenX2, y, mid*0.2, band)
	}

	const env = 30
	envColor := surface.RGBA(200, 100, 100, 0.5)
	for i := 0; i < env; i++ {
		a := WrapPhase(float64(i)/env*tau + t*0.8)
		r := 80*d + 40*d*math.Sin(WrapPhase(t*1.2+float64(i)))
		dot(s, mid+mid*0.3+r*math.Cos(a), slitY+r*math.Sin(a), 3*d, envColor)
	}

	ex := mid + mid*0.3
	text(s, "Environment particles", ex, slitY-90*d, 11, false, red, surface.AlignCenter)
	text(s, "entangle with system", ex, slitY-75*d, 11, false, red, surface.AlignCenter)
	text(s, "→ scramble phases", ex, slitY-60*d, 11, false, red, surface.AlignCenter)

	text(s, "Aha! Environment entanglement erases phase relations → interference pattern disappears → classical probabilities emerge.",
		w/2, h-24*d, 11, false, ink, surface.AlignCenter)
}
