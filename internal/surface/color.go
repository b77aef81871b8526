package surface

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Clamp01 limits v to [0,1]; NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(Clamp01(a) * 255))
}

func RGB(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// RGBA takes alpha as a fraction, clamped.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// Hex parses "#rrggbb"; malformed input yields opaque black.
func Hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// HSL takes hue in degrees and saturation and lightness as fractions.
func HSL(h, s, l float64) color.NRGBA {
	return HSLA(h, s, l, 1)
}

func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if math.IsNaN(h) {
		h = 0
	}
	c := colorful.Hsl(h, Clamp01(s), Clamp01(l)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// WithAlpha replaces the alpha of c.
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = alpha8(a)
	return c
}

// Lerp blends a towards b by t in [0,1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, Clamp01(t)).Clamped().RGB255()
	aa := float64(a.A) + (float64(b.A)-float64(a.A))*Clamp01(t)
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(aa))}
}

// Luma is the relative luminance of c in [0,1], ignoring alpha.
func Luma(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
}

var (
	Black = RGB(0x11, 0x11, 0x11)
	Paper = RGB(0xfa, 0xfa, 0xfa)
)
