package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

var energyPhasors = []struct {
	label string
	omega float64
	hex   string
	fx    float64
}{
	{"Low E", 0.3, "#2ECC71", 0.25},
	{"Med E", 0.6, "#3498DB", 0.5},
	{"High E", 1.0, "#E74C3C", 0.75},
}

func drawPhasor(s *surface.Surface, t float64, p params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	r := math.Min(w, h) * 0.15

	for _, ph := range energyPhasors {
		cx, cy := w*ph.fx, h*0.35
		c := surface.Hex(ph.hex)
		ring(s, cx, cy, r, 1.5, surface.Hex("#dddddd"))

		phi := WrapPhase(tau * ph.omega * t)
		x, y := cx+r*math.Cos(phi), cy+r*math.Sin(phi)
		line(s, cx, cy, x, y, 3, c)
		dot(s, x, y, 5*d, c)

		text(s, ph.label, cx, cy-r-15*d, 12, false, ink, surface.AlignCenter)
		text(s, "ω = E/ℏ", cx, cy+r+25*d, 12, false, ink, surface.AlignCenter)
	}

	ccx, ccy, cr := w*0.5, h*0.75, math.Min(w, h)*0.12
	text(s, "Every quantum state IS a clock", ccx, ccy-cr-20*d, 13, false, ink, surface.AlignCenter)
	ring(s, ccx, ccy, cr, 2, surface.Hex("#333333"))
	for i := 0; i < 12; i++ {
		a := float64(i)/12*tau - math.Pi/2
		line(s, ccx+cr*0.85*math.Cos(a), ccy+cr*0.85*math.Sin(a),
			ccx+cr*0.95*math.Cos(a), ccy+cr*0.95*math.Sin(a), 1, grey)
	}

	hand := WrapPhase(tau*p.Omega*t) - math.Pi/2
	line(s, ccx, ccy, ccx+cr*0.7*math.Cos(hand), ccy+cr*0.7*math.Sin(hand), 3, red)
	dot(s, ccx, ccy, 4*d, red)

	caption(s, "THIS IS TIME ITSELF.",
		"ψ(t) = Ae^{-iEt/ℏ}. Phase rotates at ω = E/ℏ. Every quantum state is an internal clock.",
		"No deeper mechanism. This rotation IS the flow of time. Everything else emerges from this.")
}
