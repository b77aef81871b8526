package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

type polygon []Point

func (p polygon) area() float64 {
	a := 0.0
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return a / 2
}

// oriented returns p wound in a fixed direction. The rasterizer sums signed
// coverage, so overlapping pieces of one stroke must agree in sign.
func (p polygon) oriented() polygon {
	if p.area() >= 0 {
		return p
	}
	r := make(polygon, len(p))
	for i := range p {
		r[len(p)-1-i] = p[i]
	}
	return r
}

func segments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 3))
	if n < 12 {
		return 12
	}
	if n > 160 {
		return 160
	}
	return n
}

func ellipsePoints(cx, cy, rx, ry, rot, a0, a1 float64, closed bool) []Point {
	n := segments(math.Max(rx, ry))
	span := a1 - a0
	steps := int(math.Ceil(float64(n) * math.Abs(span) / (2 * math.Pi)))
	if steps < 2 {
		steps = 2
	}
	cr, sr := math.Cos(rot), math.Sin(rot)
	count := steps + 1
	if closed {
		count = steps
	}
	pts := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		a := a0 + span*float64(i)/float64(steps)
		x, y := rx*math.Cos(a), ry*math.Sin(a)
		pts = append(pts, Point{cx + x*cr - y*sr, cy + x*sr + y*cr})
	}
	return pts
}

// fill rasterizes polys with the non-zero rule and composites c over the
// surface, limited to the polygons' bounding box.
func (s *Surface) fill(polys []polygon, c color.NRGBA) {
	if c.A == 0 || len(polys) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range polys {
		for _, pt := range p {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
				return
			}
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	box = box.Intersect(s.img.Rect)
	if box.Empty() {
		return
	}

	z := s.raster
	z.Reset(box.Dx(), box.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		p = p.oriented()
		z.MoveTo(float32(p[0].X-ox), float32(p[0].Y-oy))
		for _, pt := range p[1:] {
			z.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

func (s *Surface) halfWidth() float64 {
	hw := s.st.lineWidth / 2
	if hw < 0.5 {
		hw = 0.5
	}
	return hw
}

// strokePath outlines an open or closed path with the current line width,
// butt caps and round joins.
func (s *Surface) strokePath(pts []Point, closed bool) {
	if len(pts) < 2 {
		return
	}
	var runs [][]Point
	if len(s.st.dash) > 0 {
		path := pts
		if closed {
			path = append(append([]Point(nil), pts...), pts[0])
		}
		runs = dashRuns(path, s.st.dash)
		closed = false
	} else {
		runs = [][]Point{pts}
	}

	hw := s.halfWidth()
	polys := make([]polygon, 0, len(pts)*2)
	for _, run := range runs {
		polys = appendStroke(polys, run, closed, hw)
	}
	s.fill(polys, s.effective(s.st.stroke))
}

func appendStroke(polys []polygon, pts []Point, closed bool, hw float64) []polygon {
	n := len(pts)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		a, b := pts[i], pts[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		polys = append(polys, polygon{
			{a.X + nx, a.Y + ny}, {b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny}, {a.X - nx, a.Y - ny},
		})
	}
	if hw < 1 {
		return polys
	}
	start, end := 1, n-1
	if closed {
		start, end = 0, n
	}
	for i := start; i < end; i++ {
		polys = append(polys, polygon(ellipsePoints(pts[i].X, pts[i].Y, hw, hw, 0, 0, 2*math.Pi, true)))
	}
	return polys
}

// dashRuns cuts a polyline into the "on" pieces of pattern.
func dashRuns(pts []Point, pattern []float64) [][]Point {
	total := 0.0
	for _, d := range pattern {
		total += math.Max(d, 0)
	}
	if total <= 0 {
		return [][]Point{pts}
	}
	var (
		runs [][]Point
		cur  []Point
		idx  int
		left = pattern[0]
		on   = true
	)
	if on {
		cur = []Point{pts[0]}
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for segLen-pos > left {
			pos += left
			t := pos / segLen
			p := Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
			if on {
				cur = append(cur, p)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

func (s *Surface) Line(x0, y0, x1, y1 float64) {
	s.strokePath([]Point{{x0, y0}, {x1, y1}}, false)
}

func (s *Surface) Polyline(pts []Point) { s.strokePath(pts, false) }

// Polygon strokes a closed outline.
func (s *Surface) Polygon(pts []Point) { s.strokePath(pts, true) }

func (s *Surface) FillPolygon(pts []Point) {
	if len(pts) < 3 {
		return
	}
	s.fill([]polygon{polygon(pts)}, s.effective(s.st.fill))
}

func (s *Surface) StrokeCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	s.strokePath(ellipsePoints(cx, cy, r, r, 0, 0, 2*math.Pi, true), true)
}

func (s *Surface) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	s.fill([]polygon{ellipsePoints(cx, cy, r, r, 0, 0, 2*math.Pi, true)}, s.effective(s.st.fill))
}

// StrokeArc strokes the arc from angle a0 to a1 (radians, clockwise on screen).
func (s *Surface) StrokeArc(cx, cy, r, a0, a1 float64) {
	if r <= 0 || a0 == a1 {
		return
	}
	s.strokePath(ellipsePoints(cx, cy, r, r, 0, a0, a1, false), false)
}

func (s *Surface) StrokeEllipse(cx, cy, rx, ry, rot float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.strokePath(ellipsePoints(cx, cy, rx, ry, rot, 0, 2*math.Pi, true), true)
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rot float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.fill([]polygon{ellipsePoints(cx, cy, rx, ry, rot, 0, 2*math.Pi, true)}, s.effective(s.st.fill))
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	s.strokePath([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, true)
}

// FillRect composites directly onto whole pixels.
func (s *Surface) FillRect(x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	r := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h))).Intersect(s.img.Rect)
	if r.Empty() {
		return
	}
	s.blendRect(r, s.effective(s.st.fill))
}

func (s *Surface) blendRect(r image.Rectangle, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	sr, sg, sb := uint32(c.R)*a, uint32(c.G)*a, uint32(c.B)*a
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p := s.img.Pix[i : i+4 : i+4]
			p[0] = uint8((sr + uint32(p[0])*ia + 127) / 255)
			p[1] = uint8((sg + uint32(p[1])*ia + 127) / 255)
			p[2] = uint8((sb + uint32(p[2])*ia + 127) / 255)
			p[3] = uint8((a*255 + uint32(p[3])*ia + 127) / 255)
			i += 4
		}
	}
}
