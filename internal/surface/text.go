package surface

import (
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// glyphs basicfont cannot draw, spelled out
var plain = strings.NewReplacer(
	"ψ", "psi", "Ψ", "Psi", "ω", "w", "ℏ", "h", "φ", "phi", "θ", "theta",
	"ρ", "rho", "Δ", "d", "τ", "tau", "γ", "g", "ν", "v", "μ", "mu",
	"→", "->", "←", "<-", "↓", "v", "↑", "^", "↻", "@", "≈", "~", "≠", "!=",
	"²", "^2", "±", "+/-", "⊗", "x", "∑", "sum", "Σ", "S", "∞", "inf",
	"—", "-", "–", "-", "·", ".", "⟩", ">", "⟨", "<", "×", "x",
)

// Plain rewrites s into the character set the bitmap face covers.
func Plain(s string) string {
	s = plain.Replace(s)
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Surface) textScale() int {
	k := int(math.Round(s.st.fontSize / float64(face.Height)))
	if k < 1 {
		k = 1
	}
	return k
}

// MeasureText returns the drawn width of str in backing pixels.
func (s *Surface) MeasureText(str string) float64 {
	str = Plain(str)
	w := font.MeasureString(face, str).Ceil()
	return float64(w * s.textScale())
}

// Text draws str with its baseline at y, anchored at x by the current
// alignment, in the current fill colour.
func (s *Surface) Text(str string, x, y float64) {
	str = Plain(str)
	if str == "" {
		return
	}
	k := s.textScale()
	w := font.MeasureString(face, str).Ceil()
	if w <= 0 {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, w+1, face.Height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(str)

	left := x
	switch s.st.align {
	case AlignCenter:
		left -= float64(w*k) / 2
	case AlignRight:
		left -= float64(w * k)
	}
	top := int(math.Round(y)) - face.Ascent*k
	if s.st.baseline == BaselineMiddle {
		top = int(math.Round(y)) - face.Height*k/2
	}
	l := int(math.Round(left))

	c := s.effective(s.st.fill)
	s.blitMask(mask, l, top, k, c)
	if s.st.bold {
		s.blitMask(mask, l+k, top, k, c)
	}
}

func (s *Surface) blitMask(mask *image.Alpha, left, top, k int, c color.NRGBA) {
	b := mask.Bounds()
	for my := b.Min.Y; my < b.Max.Y; my++ {
		for mx := b.Min.X; mx < b.Max.X; mx++ {
			ma := mask.AlphaAt(mx, my).A
			if ma == 0 {
				continue
			}
			cc := c
			cc.A = uint8(uint32(c.A) * uint32(ma) / 255)
			r := image.Rect(left+mx*k, top+my*k, left+(mx+1)*k, top+(my+1)*k).Intersect(s.img.Rect)
			if !r.Empty() {
				s.blendRect(r, cc)
			}
		}
	}
}
