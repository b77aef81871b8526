package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

func drawClassical(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()

	const cols, rows = 120, 60
	a, b := WrapPhase(0.7*t), WrapPhase(0.5*t)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			v := math.Sin(0.2*float64(i)-a) * math.Cos(0.2*float64(j)+b)
			g := uint8(180 + 30*v)
			s.SetFill(surface.RGBA(g, g, g, 0.18))
			s.FillRect(float64(i)/cols*w, float64(j)/rows*h, w/cols+1, h/rows+1)
		}
	}

	dark := surface.Hex("#222222")
	cx, cy, R := w*0.55, h*0.55, h*0.28
	s.SetStroke(dark)
	s.SetLineWidth(1.5 * d)
	s.StrokeEllipse(cx, cy, R, R*0.7, 0)
	th := WrapPhase(t * 0.6)
	dot(s, cx+R*math.Cos(th), cy+R*0.7*math.Sin(th), 6*d, dark)

	kx, ky, r := w*0.18, h*0.2, math.Min(w, h)*0.08
	ring(s, kx, ky, r, 1.5, dark)
	hh, mm := WrapPhase(t*0.2)-math.Pi/2, WrapPhase(t*0.6)-math.Pi/2
	line(s, kx, ky, kx+r*0.6*math.Cos(hh), ky+r*0.6*math.Sin(hh), 1.5, dark)
	line(s, kx, ky, kx+r*0.9*math.Cos(mm), ky+r*0.9*math.Sin(mm), 1.5, dark)

	text(s, "Decohered macro: trajectories & clocks atop faint phase fabric.",
		16*d, h-24*d, 14, false, ink, surface.AlignLeft)
}
