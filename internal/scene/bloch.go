package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

var blochStates = []struct {
	omega, theta float64
	hex          string
}{
	{0.6, math.Pi / 4, "#E74C3C"},
	{0.4, math.Pi / 2.5, "#3498DB"},
	{0.25, math.Pi / 3, "#2ECC71"},
}

// blochVector is a point on a sphere of radius r at polar angle theta,
// rotated by phi about the vertical axis.
func blochVector(r, theta, phi float64) mgl64.Vec3 {
	v := mgl64.Vec3{r * math.Sin(theta), r * math.Cos(theta), 0}
	return mgl64.Rotate3DY(-phi).Mul3x1(v)
}

// project flattens v onto the screen with a fixed oblique tilt.
func project(cx, cy float64, v mgl64.Vec3) (float64, float64) {
	return cx + v.X(), cy - v.Y()*0.3 + v.Z()*0.3
}

func drawBloch(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx1, cy1, R := w*0.35, h*0.5, math.Min(w, h)*0.28
	rim := surface.Hex("#bbbbbb")

	ring(s, cx1, cy1, R, 1.5, rim)
	s.SetAlpha(0.3)
	for k := -3; k <= 3; k++ {
		a := float64(k) * math.Pi / 8
		r := R * math.Cos(a)
		s.StrokeEllipse(cx1, cy1+R*math.Sin(a)*0.3, r, r*0.3, 0)
	}
	s.SetAlpha(1)

	for _, st := range blochStates {
		c := surface.Hex(st.hex)
		x, y := project(cx1, cy1, blochVector(R, st.theta, WrapPhase(st.omega*t)))
		s.SetAlpha(0.7)
		line(s, cx1, cy1, x, y, 2, c)
		s.SetAlpha(1)
		dot(s, x, y, 4*d, c)
	}
	text(s, "|0⟩", cx1, cy1-R-15*d, 11, false, grey, surface.AlignCenter)
	text(s, "|1⟩", cx1, cy1+R+25*d, 11, false, grey, surface.AlignCenter)

	cx2, cy2, r2 := w*0.75, h*0.5, R*0.8
	text(s, "Phase view", cx2, cy2-r2-20*d, 12, false, ink, surface.AlignCenter)
	ring(s, cx2, cy2, r2, 1.5, rim)
	for _, st := range blochStates {
		c := surface.Hex(st.hex)
		phi := WrapPhase(st.omega * t)
		px, py := cx2+r2*math.Cos(phi), cy2+r2*math.Sin(phi)
		line(s, cx2, cy2, px, py, 2, c)
		dot(s, px, py, 3*d, c)
	}

	text(s, "→", (cx1+cx2)/2, cy1, 16, false, grey, surface.AlignCenter)
	text(s, "projection", (cx1+cx2)/2, cy1+20*d, 11, false, grey, surface.AlignCenter)
	text(s, "3D rotation on sphere → 2D phase rotation. Different energies = different ω.",
		16*d, h-24*d, 14, false, ink, surface.AlignLeft)
}
