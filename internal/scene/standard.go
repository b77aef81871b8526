package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

var (
	quarks  = [3][2]string{{"u", "d"}, {"c", "s"}, {"t", "b"}}
	leptons = [3][2]string{{"e", "ve"}, {"μ", "vμ"}, {"τ", "vτ"}}
	bosons  = []struct{ name, force, hex string }{
		{"γ", "EM", "#F1C40F"},
		{"W±,Z", "Weak", "#E67E22"},
		{"g", "Strong", "#E74C3C"},
		{"H", "Mass", "#8E44AD"},
	}
)

func drawStandardModel(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, top, row := w/2, h*0.12, h*0.18
	white := surface.RGB(255, 255, 255)
	blue := surface.Hex("#3498DB")

	text(s, "The Standard Model: Catalog of Reality", cx, top-15*d, 16, true, ink, surface.AlignCenter)

	gw, gx := w*0.28, w*0.05
	q := 20 * d
	for g := 0; g < 3; g++ {
		x := gx + float64(g)*(gw+w*0.02)
		y := top + row*0.5

		s.SetStroke(blue)
		s.SetLineWidth(2 * d)
		s.StrokeRect(x, y, gw, row*1.4)
		text(s, fmt.Sprintf("Generation %d", g+1), x+gw/2, y-8*d, 12, true, blue, surface.AlignCenter)

		qx, lx := x+gw*0.25, x+gw*0.75
		y1, y2 := y+row*0.3, y+row*0.7

		s.SetFill(surface.Hex("#E74C3C"))
		s.FillRect(qx-q/2, y1-q/2, q, q)
		text(s, quarks[g][0], qx, y1+4*d, 10, true, white, surface.AlignCenter)
		s.SetFill(surface.Hex("#C0392B"))
		s.FillRect(qx-q/2, y2-q/2, q, q)
		text(s, quarks[g][1], qx, y2+4*d, 10, true, white, surface.AlignCenter)

		dot(s, lx, y1, q/2, surface.Hex("#2ECC71"))
		text(s, leptons[g][0], lx, y1+4*d, 10, true, white, surface.AlignCenter)
		dot(s, lx, y2, q/2, surface.Hex("#27AE60"))
		text(s, leptons[g][1], lx, y2+3*d, 9, false, white, surface.AlignCenter)

		text(s, "Quarks", qx, y+row*1.5, 9, false, grey, surface.AlignCenter)
		text(s, "Leptons", lx, y+row*1.5, 9, false, grey, surface.AlignCenter)
	}

	fy, fw, fx := top+row*2.3, w*0.9, w*0.05
	violet := surface.Hex("#9B59B6")
	s.SetStroke(violet)
	s.SetLineWidth(2 * d)
	s.StrokeRect(fx, fy, fw, row*0.9)
	text(s, "Force Carriers (Bosons)", cx, fy-8*d, 12, true, violet, surface.AlignCenter)

	spacing := fw / float64(len(bosons)+1)
	for i, b := range bosons {
		bx, by := fx+spacing*float64(i+1), fy+row*0.45
		c := surface.Hex(b.hex)
		wave := WrapPhase(t*2 + float64(i)*math.Pi*0.5)
		pts := make([]surface.Point, 30)
		for j := range pts {
			pts[j] = surface.Pt(bx-15*d+float64(j)*d, by+math.Sin(wave+float64(j)*0.3)*8*d)
		}
		s.SetStroke(c)
		s.SetLineWidth(3 * d)
		s.Polyline(pts)
		text(s, b.name, bx, by-20*d, 11, true, c, surface.AlignCenter)
		text(s, b.force, bx, by+25*d, 9, false, grey, surface.AlignCenter)
	}

	text(s, "17 fundamental fields: 12 matter (quarks + leptons) + 4 forces + Higgs", cx, h-30*d, 11, false, ink, surface.AlignCenter)
	text(s, "Missing: Gravity (still classical), Dark Matter, Neutrino masses", cx, h-12*d, 10, true, red, surface.AlignCenter)
}
