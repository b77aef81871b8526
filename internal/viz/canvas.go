package viz

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// DefaultThreshold is the RGB distance from the background above which a
// sampled block lights its dot.
const DefaultThreshold = 0.12

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Colors holds the mean ink colour of each cell's lit dots.
	Colors [][]color.NRGBA
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.NRGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.NRGBA, w)
	}
	c.Clear()
	return c
}

// Resize reallocates the grid when the cell size changes.
func (c *Canvas) Resize(w, h int) *Canvas {
	if c != nil && c.Width == w && c.Height == h {
		return c
	}
	return NewCanvas(w, h)
}

// Dots is the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.NRGBA{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FromImage downsamples img onto the dot grid. Each dot averages its block
// of source pixels and lights when that average differs from bg by more
// than threshold; lit dots contribute their colour to the cell.
func (c *Canvas) FromImage(img image.Image, bg color.Color, threshold float64) {
	c.Clear()
	b := img.Bounds()
	if b.Empty() {
		return
	}
	back, _ := colorful.MakeColor(opaque(bg))
	dw, dh := c.Dots()
	sx := float64(b.Dx()) / float64(dw)
	sy := float64(b.Dy()) / float64(dh)

	rgba, _ := img.(*image.RGBA)
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			var r, g, bl, n float64
			for sub := 0; sub < 8; sub++ {
				x, y := col*2+sub%2, row*4+sub/2
				avg := blockMean(img, rgba, b,
					int(float64(x)*sx), int(float64(y)*sy),
					int(math.Ceil(float64(x+1)*sx)), int(math.Ceil(float64(y+1)*sy)))
				if avg.DistanceRgb(back) <= threshold {
					continue
				}
				c.Set(x, y)
				r, g, bl, n = r+avg.R, g+avg.G, bl+avg.B, n+1
			}
			if n > 0 {
				cr, cg, cb := colorful.Color{R: r / n, G: g / n, B: bl / n}.Clamped().RGB255()
				c.Colors[row][col] = color.NRGBA{R: cr, G: cg, B: cb, A: 255}
			}
		}
	}
}

func blockMean(img image.Image, rgba *image.RGBA, b image.Rectangle, x0, y0, x1, y1 int) colorful.Color {
	x0, y0 = x0+b.Min.X, y0+b.Min.Y
	x1, y1 = min(x1+b.Min.X, b.Max.X), min(y1+b.Min.Y, b.Max.Y)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	var r, g, bl, n float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if rgba != nil {
				p := rgba.Pix[rgba.PixOffset(x, y):]
				r, g, bl = r+float64(p[0]), g+float64(p[1]), bl+float64(p[2])
			} else {
				cr, cg, cb, _ := img.At(x, y).RGBA()
				r, g, bl = r+float64(cr>>8), g+float64(cg>>8), bl+float64(cb>>8)
			}
			n++
		}
	}
	return colorful.Color{R: r / n / 255, G: g / n / 255, B: bl / n / 255}
}

func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}

// String renders the grid without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours each cell through theme, batching runs of equal colour.
func (c *Canvas) Render(theme Theme) string {
	var b strings.Builder
	for row := range c.Grid {
		var (
			run  []rune
			prev lipgloss.Color
		)
		flush := func() {
			if len(run) == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(prev).Render(string(run)))
			run = run[:0]
		}
		for col, r := range c.Grid[row] {
			fg := theme.Muted
			if r != blank {
				fg = theme.Adapt(c.Colors[row][col])
			}
			if fg != prev {
				flush()
				prev = fg
			}
			run = append(run, r)
		}
		flush()
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
