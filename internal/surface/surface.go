package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Align is the horizontal text anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical text anchor.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineMiddle
)

type Point struct{ X, Y float64 }

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

type state struct {
	stroke    color.NRGBA
	fill      color.NRGBA
	lineWidth float64
	alpha     float64
	dash      []float64
	fontSize  float64
	bold      bool
	align     Align
	baseline  Baseline
}

func defaultState() state {
	return state{
		stroke:    color.NRGBA{A: 255},
		fill:      color.NRGBA{A: 255},
		lineWidth: 1,
		alpha:     1,
		fontSize:  10,
	}
}

type Surface struct {
	img      *image.RGBA
	logicalW int
	logicalH int
	dpr      float64
	bg       color.NRGBA
	st       state
	raster   *vector.Rasterizer
}

// New allocates a surface of logical size w×h at the given pixel ratio.
func New(w, h int, dpr float64) *Surface {
	s := &Surface{bg: Paper, st: defaultState(), raster: vector.NewRasterizer(1, 1)}
	s.Fit(w, h, dpr)
	s.Clear()
	return s
}

func backing(logical int, dpr float64) int {
	n := int(math.Round(float64(logical) * dpr))
	if n < 1 {
		n = 1
	}
	return n
}

// Fit resizes the backing store to the logical size times dpr. It reports
// whether the store was reallocated.
func (s *Surface) Fit(w, h int, dpr float64) bool {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	s.logicalW, s.logicalH, s.dpr = w, h, dpr
	bw, bh := backing(w, dpr), backing(h, dpr)
	if s.img != nil && s.img.Rect.Dx() == bw && s.img.Rect.Dy() == bh {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, bw, bh))
	return true
}

// W and H are backing-store pixels.
func (s *Surface) W() float64   { return float64(s.img.Rect.Dx()) }
func (s *Surface) H() float64   { return float64(s.img.Rect.Dy()) }
func (s *Surface) DPR() float64 { return s.dpr }
func (s *Surface) Logical() (int, int) {
	return s.logicalW, s.logicalH
}

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) SetBackground(c color.NRGBA) { s.bg = c }
func (s *Surface) Background() color.NRGBA     { return s.bg }

// Clear paints the background and resets the drawing state.
func (s *Surface) Clear() {
	c := s.bg
	c.A = 255
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, 255
	}
	s.st = defaultState()
}

func (s *Surface) SetStroke(c color.NRGBA) { s.st.stroke = c }
func (s *Surface) SetFill(c color.NRGBA)   { s.st.fill = c }
func (s *Surface) SetLineWidth(w float64)  { s.st.lineWidth = w }
func (s *Surface) SetAlpha(a float64)      { s.st.alpha = Clamp01(a) }
func (s *Surface) Alpha() float64          { return s.st.alpha }
func (s *Surface) SetAlign(a Align)        { s.st.align = a }
func (s *Surface) SetBaseline(b Baseline)  { s.st.baseline = b }
func (s *Surface) SetFont(size float64, bold bool) {
	s.st.fontSize, s.st.bold = size, bold
}

// SetDash sets an on/off pattern in pixels; no arguments restores solid lines.
func (s *Surface) SetDash(pattern ...float64) {
	if len(pattern) == 0 {
		s.st.dash = nil
		return
	}
	s.st.dash = append([]float64(nil), pattern...)
}

func (s *Surface) effective(c color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255 * s.st.alpha
	c.A = alpha8(a)
	return c
}

// Luminance is the mean luma of the backing store.
func (s *Surface) Luminance() float64 {
	pix := s.img.Pix
	n := len(pix) / 4
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(pix); i += 4 {
		sum += 0.2126*float64(pix[i]) + 0.7152*float64(pix[i+1]) + 0.0722*float64(pix[i+2])
	}
	return sum / float64(n) / 255
}

// At returns the pixel at backing coordinates x, y.
func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}
