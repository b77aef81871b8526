package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

func drawMystery(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	m := math.Min(w, h)
	dark := surface.Hex("#333333")

	// analog clock
	c1x, c1y, r1 := w*0.2, h*0.25, m*0.12
	ring(s, c1x, c1y, r1, 2, dark)
	hour, minute := WrapPhase(t*0.3), WrapPhase(t*0.8)
	line(s, c1x, c1y, c1x+r1*0.5*math.Sin(hour), c1y-r1*0.5*math.Cos(hour), 3, dark)
	line(s, c1x, c1y, c1x+r1*0.8*math.Sin(minute), c1y-r1*0.8*math.Cos(minute), 2, dark)

	// pendulum
	px, py := w*0.25, h*0.65
	swing := math.Sin(t*1.2) * 0.6
	l := m * 0.15
	bx, by := px+l*math.Sin(swing), py+l*math.Cos(swing)
	line(s, px, py, bx, by, 2, dark)
	dot(s, bx, by, 8*d, dark)

	// orbit
	ox, oy, or := w*0.7, h*0.4, m*0.18
	s.SetDash(5*d, 5*d)
	ring(s, ox, oy, or, 1, surface.Hex("#aaaaaa"))
	s.SetDash()
	a := WrapPhase(t * 0.5)
	dot(s, ox+or*math.Cos(a), oy+or*math.Sin(a), 8*d, surface.Hex("#E67E22"))
	dot(s, ox, oy, 12*d, surface.Hex("#F39C12"))

	// pulse trace
	qx, qy, qw := w*0.7, h*0.75, w*0.25
	const steps = 50
	pts := make([]surface.Point, 0, steps)
	for i := 0; i < steps; i++ {
		x := qx - qw/2 + float64(i)/steps*qw
		phase := float64(i)/steps*4*math.Pi - t*2
		y := qy + math.Sin(phase)*20*d*math.Exp(-math.Abs(float64(i)-steps/2)/10)
		pts = append(pts, surface.Pt(x, y))
	}
	s.SetStroke(red)
	s.SetLineWidth(3 * d)
	s.Polyline(pts)

	cx, cy := w*0.5, h*0.45
	s.SetBaseline(surface.BaselineMiddle)
	text(s, "What GENERATES time?", cx, cy-20*d, 20, true, red, surface.AlignCenter)
	text(s, "Without it, the universe would be frozen.", cx, cy+15*d, 14, false, grey, surface.AlignCenter)
	text(s, "?", cx, cy+60*d, 60, true, surface.RGBA(0, 0, 0, 0.12), surface.AlignCenter)
	text(s, "All these clocks tick. But what's the underlying mechanism? There must be something more fundamental...",
		w/2, h-20*d, 12, false, ink, surface.AlignCenter)
}
