package scene

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

var symmetries = []struct {
	title, subtitle, conserved, hex string
}{
	{"Time Symmetry", "Physics doesn't change over time", "Energy", "#E74C3C"},
	{"Space Symmetry", "Physics same everywhere", "Momentum", "#3498DB"},
	{"Rotation Symmetry", "Physics same in all directions", "Angular Momentum", "#2ECC71"},
}

// splitHalf breaks s into two lines at the middle word.
func splitHalf(s string) (string, string) {
	words := strings.Fields(s)
	k := (len(words) + 1) / 2
	return strings.Join(words[:k], " "), strings.Join(words[k:], " ")
}

// arm is the tip of a radius-r arm at angle a about (cx, cy).
func arm(cx, cy, r, a float64) (float64, float64) {
	v := mgl64.Rotate2D(a).Mul2x1(mgl64.Vec2{r, 0})
	return cx + v.X(), cy + v.Y()
}

func drawSymmetry(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	text(s, "Noether's Theorem: Symmetry → Conservation", w/2, h*0.08, 15, true, ink, surface.AlignCenter)

	bw, bh := w*0.28, h*0.5
	x0, y := w*0.06, h*0.18
	gap := (w - x0*2 - bw*3) / 2

	for idx, sym := range symmetries {
		x := x0 + float64(idx)*(bw+gap)
		c := surface.Hex(sym.hex)
		cx, cy := x+bw/2, y+bh*0.5

		s.SetStroke(c)
		s.SetLineWidth(2 * d)
		s.StrokeRect(x, y, bw, bh)
		text(s, sym.title, cx, y-10*d, 11, true, c, surface.AlignCenter)
		l1, l2 := splitHalf(sym.subtitle)
		text(s, l1, cx, y+bh*0.15, 9, false, grey, surface.AlignCenter)
		text(s, l2, cx, y+bh*0.25, 9, false, grey, surface.AlignCenter)

		switch idx {
		case 0:
			r := bw * 0.2
			ring(s, cx, cy, r, 2, c)
			hx, hy := arm(cx, cy, r*0.7, WrapPhase(t*2)-math.Pi/2)
			line(s, cx, cy, hx, hy, 3, c)
		case 1:
			dot(s, cx+math.Sin(WrapPhase(t*1.5))*bw*0.25, cy, 8*d, c)
			s.SetDash(5*d, 3*d)
			line(s, cx-bw*0.3, cy, cx+bw*0.3, cy, 2, surface.WithAlpha(c, 0x40/255.0))
			s.SetDash()
		default:
			r := bw * 0.18
			ex, ey := arm(cx, cy, r, WrapPhase(t*1.5))
			line(s, cx, cy, ex, ey, 3, c)
			ring(s, cx, cy, r, 1, surface.WithAlpha(c, 0x30/255.0))
			dot(s, ex, ey, 5*d, c)
		}

		text(s, "↓", cx, y+bh*0.7, 20, true, grey, surface.AlignCenter)
		text(s, sym.conserved, cx, y+bh*0.85, 13, true, c, surface.AlignCenter)
		text(s, "Conserved", cx, y+bh*0.95, 10, false, grey, surface.AlignCenter)
	}

	ey := y + bh + h*0.08
	text(s, "Every continuous symmetry generates a conserved quantity", w/2, ey, 11, false, ink, surface.AlignCenter)
	text(s, "Energy generates time evolution: H → e^{-iHt/ℏ}", w/2, ey+25*d, 12, true, surface.Hex("#8E44AD"), surface.AlignCenter)
	text(s, "Conservation isn't imposed - it emerges from symmetry structure", w/2, ey+45*d, 10, false, grey, surface.AlignCenter)
}
