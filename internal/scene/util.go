package scene

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/phasetime/internal/surface"
)

const tau = 2 * math.Pi

// WrapPhase maps any angle into [0, 2π).
func WrapPhase(phi float64) float64 {
	if math.IsNaN(phi) || math.IsInf(phi, 0) {
		return 0
	}
	phi = math.Mod(phi, tau)
	if phi < 0 {
		phi += tau
	}
	if phi >= tau {
		phi = 0
	}
	return phi
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

var (
	ink   = surface.Black
	grey  = surface.Hex("#666666")
	red   = surface.Hex("#c0392b")
	faint = surface.Hex("#999999")
)

// text draws str at a font size given in CSS pixels.
func text(s *surface.Surface, str string, x, y, size float64, bold bool, c color.NRGBA, a surface.Align) {
	s.SetFont(size*s.DPR(), bold)
	s.SetFill(c)
	s.SetAlign(a)
	s.Text(str, x, y)
}

// caption writes the usual headline and two footer lines.
func caption(s *surface.Surface, head, body, note string) {
	w, h, d := s.W(), s.H(), s.DPR()
	if head != "" {
		text(s, head, w/2, h-55*d, 16, true, red, surface.AlignCenter)
	}
	if body != "" {
		text(s, body, w/2, h-35*d, 12, false, ink, surface.AlignCenter)
	}
	if note != "" {
		text(s, note, w/2, h-18*d, 11, false, grey, surface.AlignCenter)
	}
}

func dot(s *surface.Surface, x, y, r float64, c color.NRGBA) {
	s.SetFill(c)
	s.FillCircle(x, y, r)
}

func line(s *surface.Surface, x0, y0, x1, y1, width float64, c color.NRGBA) {
	s.SetStroke(c)
	s.SetLineWidth(width * s.DPR())
	s.Line(x0, y0, x1, y1)
}

func ring(s *surface.Surface, x, y, r, width float64, c color.NRGBA) {
	s.SetStroke(c)
	s.SetLineWidth(width * s.DPR())
	s.StrokeCircle(x, y, r)
}
