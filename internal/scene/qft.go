package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

var excitations = []struct {
	x, y, phase float64
	label       string
}{
	{0.25, 0.4, 0, "e-"},
	{0.5, 0.5, 1, "γ"},
	{0.75, 0.35, 2, "e+"},
}

// packetAlpha is the ring opacity at radius r of a wave packet of size rmax.
func packetAlpha(r, rmax, phase float64) float64 {
	amp := math.Exp(-(r/rmax)*(r/rmax)*3) * math.Sin(WrapPhase(phase*3))
	return surface.Clamp01((1 - r/rmax) * 0.5 * (amp + 1) / 2)
}

func drawQFT(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()

	grid := 20 * d
	gc := surface.RGBA(100, 100, 100, 0.15)
	for x := 0.0; x < w; x += grid {
		line(s, x, 0, x, h, 0.5, gc)
	}
	for y := 0.0; y < h; y += grid {
		line(s, 0, y, w, y, 0.5, gc)
	}
	text(s, "Quantum Field (permeates all space)", w/2, 25*d, 12, false, grey, surface.AlignCenter)

	waveR := 60 * d
	for _, p := range excitations {
		px, py := w*p.x, h*p.y
		for r := 0.0; r < waveR; r += 3 * d {
			phase := p.phase*math.Pi/2 + r*0.1 - t
			ring(s, px, py, r, 2, surface.RGBA(52, 152, 219, packetAlpha(r, waveR, phase)))
		}
		dot(s, px, py, 8*d, surface.Hex("#E74C3C"))
		text(s, p.label, px, py+waveR+20*d, 14, false, ink, surface.AlignCenter)
	}

	opY := h * 0.75
	text(s, "Second Quantization:", w/2, opY-25*d, 13, false, ink, surface.AlignCenter)

	green := surface.Hex("#27ae60")
	a1, a2 := w*0.3, w*0.7
	line(s, a1, opY, a2, opY, 3, green)
	s.SetFill(green)
	s.FillPolygon([]surface.Point{{X: a2, Y: opY}, {X: a2 - 12*d, Y: opY - 8*d}, {X: a2 - 12*d, Y: opY + 8*d}})

	text(s, "|0⟩", a1-30*d, opY+5*d, 12, false, ink, surface.AlignCenter)
	text(s, "(vacuum)", a1-30*d, opY+20*d, 12, false, ink, surface.AlignCenter)
	text(s, "a+", (a1+a2)/2, opY-10*d, 13, true, green, surface.AlignCenter)
	text(s, "(creation operator)", (a1+a2)/2, opY+25*d, 10, false, green, surface.AlignCenter)
	text(s, "|1⟩", a2+30*d, opY+5*d, 12, true, surface.Hex("#e74c3c"), surface.AlignCenter)
	text(s, "(one particle)", a2+30*d, opY+20*d, 10, false, ink, surface.AlignCenter)

	text(s, "Aha! Particles are DISCRETE quanta of field excitation. The field itself is quantized.",
		w/2, h-24*d, 11, false, ink, surface.AlignCenter)
}
