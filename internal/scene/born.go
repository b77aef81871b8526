package scene

import (
	"image/color"
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const bornCycle = 6

// Collapsed reports whether the measurement demo is in its post-measurement
// half at time t.
func Collapsed(t float64) bool {
	return math.Mod(t*0.3, bornCycle) >= bornCycle/2
}

func arrowHead(s *surface.Surface, x, y, half, depth float64) {
	s.FillPolygon([]surface.Point{{X: x, Y: y}, {X: x - half, Y: y + depth}, {X: x + half, Y: y + depth}})
}

// probBar is a translucent bar with a solid outline.
func probBar(s *surface.Surface, x, y, w, h float64, c color.NRGBA) {
	s.SetAlpha(0.3)
	s.SetFill(c)
	s.FillRect(x, y, w, h)
	s.SetAlpha(1)
	s.SetStroke(c)
	s.SetLineWidth(2 * s.DPR())
	s.StrokeRect(x, y, w, h)
}

func drawBornRule(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, cy := w/2, h*0.35
	green, red2, blue := surface.Hex("#27ae60"), surface.Hex("#e74c3c"), surface.Hex("#3498db")
	arrow := 60 * d

	text(s, "MEASUREMENT MYSTERY", cx, 30*d, 16, true, ink, surface.AlignCenter)

	if !Collapsed(t) {
		text(s, "BEFORE measurement:", cx, 70*d, 13, false, grey, surface.AlignCenter)
		dot(s, cx, cy, 30*d, blue)

		s.SetAlpha(0.6)
		line(s, cx, cy, cx, cy-arrow, 4, green)
		s.SetFill(green)
		arrowHead(s, cx, cy-arrow, 8*d, 15*d)
		line(s, cx, cy, cx, cy+arrow, 4, red2)
		s.SetFill(red2)
		arrowHead(s, cx, cy+arrow, 8*d, -15*d)
		s.SetAlpha(1)

		text(s, "|ψ⟩ = 0.6|↑⟩ + 0.8|↓⟩", cx, cy+arrow+40*d, 12, false, ink, surface.AlignCenter)
		text(s, "(both exist simultaneously)", cx, cy+arrow+60*d, 11, false, grey, surface.AlignCenter)

		py := h * 0.75
		text(s, "Possible outcomes:", cx, py-30*d, 12, false, ink, surface.AlignCenter)
		probBar(s, cx-150*d, py-20*d, 100*d, 30*d, green)
		text(s, "P(↑) = 36%", cx-100*d, py, 12, false, green, surface.AlignCenter)
		probBar(s, cx+50*d, py-20*d, 140*d, 30*d, red2)
		text(s, "P(↓) = 64%", cx+120*d, py, 12, false, red2, surface.AlignCenter)
		return
	}

	text(s, "AFTER measurement:", cx, 70*d, 13, false, grey, surface.AlignCenter)
	dot(s, cx, cy, 30*d, blue)
	line(s, cx, cy, cx, cy+arrow, 6, red2)
	s.SetFill(red2)
	arrowHead(s, cx, cy+arrow, 10*d, -18*d)
	text(s, "Result: SPIN DOWN", cx, cy+arrow+40*d, 14, true, red2, surface.AlignCenter)

	my := h * 0.75
	text(s, "Why only ONE outcome?", cx, my-20*d, 15, true, red, surface.AlignCenter)
	text(s, "Why THIS one (not ↑)?", cx, my+10*d, 13, false, red, surface.AlignCenter)
	text(s, "Decoherence explains no interference,", cx, my+35*d, 11, false, grey, surface.AlignCenter)
	text(s, "but NOT why we see ONE result or P=|ψ|²", cx, my+50*d, 11, false, grey, surface.AlignCenter)
}
