package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

func drawSpacetime(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, cy := w*0.3, h*0.6
	L := math.Min(w, h) * 0.35
	dark := surface.Hex("#333333")

	line(s, cx, cy, cx, cy-L, 2, dark)
	line(s, cx, cy, cx+L, cy, 2, dark)
	text(s, "ct", cx, cy-L-15*d, 13, false, ink, surface.AlignCenter)
	text(s, "x", cx+L+20*d, cy, 13, false, ink, surface.AlignCenter)

	cone := surface.RGBA(255, 200, 0, 0.5)
	line(s, cx, cy, cx+L*0.7, cy-L*0.7, 2, cone)
	line(s, cx, cy, cx-L*0.7, cy-L*0.7, 2, cone)
	text(s, "light cone", cx+L*0.5, cy-L*0.5-10*d, 11, false, surface.Hex("#F39C12"), surface.AlignCenter)

	const n = 20
	sway := WrapPhase(t * 0.5)
	pts := make([]surface.Point, n)
	for i := range pts {
		f := float64(i) / n
		pts[i] = surface.Pt(cx+L*0.3*math.Sin(f*tau+sway)*f, cy-L*f*0.9)
	}
	wl := surface.Hex("#E74C3C")
	s.SetStroke(wl)
	s.SetLineWidth(3 * d)
	s.Polyline(pts)
	text(s, "worldline", cx+30*d, cy-L*0.5, 11, false, wl, surface.AlignLeft)

	bx, by := w*0.65, h*0.3
	text(s, "Proper time τ:", bx, by, 14, false, ink, surface.AlignCenter)
	text(s, "dτ² = dt² - dx²/c²", bx, by+30*d, 12, false, ink, surface.AlignCenter)
	text(s, "Phase = ∫ mc² dτ / ℏ", bx, by+60*d, 12, false, ink, surface.AlignCenter)
	text(s, "Space + Time = Spacetime", bx, by+100*d, 13, false, ink, surface.AlignCenter)

	text(s, "Phase accumulation encodes both time AND space. But where does metric g_μν come from?",
		16*d, h-24*d, 14, false, ink, surface.AlignLeft)
}
