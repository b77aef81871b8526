package surface

import (
	"bytes"
	"math"
	"testing"
)

func TestFitScalesByDPR(t *testing.T) {
	tests := []struct {
		w, h   int
		dpr    float64
		bw, bh float64
	}{
		{300, 200, 1, 300, 200},
		{300, 200, 2, 600, 400},
		{101, 51, 1.5, 152, 77},
		{10, 10, 0, 10, 10},
	}
	for _, tt := range tests {
		s := New(tt.w, tt.h, tt.dpr)
		if s.W() != tt.bw || s.H() != tt.bh {
			t.Errorf("New(%d,%d,%v): expected %vx%v, got %vx%v", tt.w, tt.h, tt.dpr, tt.bw, tt.bh, s.W(), s.H())
		}
	}
}

func TestFitReallocatesOnlyOnChange(t *testing.T) {
	s := New(100, 50, 1)
	if s.Fit(100, 50, 1) {
		t.Error("same size should not reallocate")
	}
	if !s.Fit(100, 50, 2) {
		t.Error("new ratio should reallocate")
	}
	if s.DPR() != 2 {
		t.Errorf("expected dpr 2, got %v", s.DPR())
	}
}

func TestClearResetsState(t *testing.T) {
	s := New(20, 20, 1)
	s.SetAlpha(0.1)
	s.SetDash(2, 2)
	s.SetLineWidth(9)
	s.Clear()
	if s.Alpha() != 1 {
		t.Errorf("expected alpha reset to 1, got %v", s.Alpha())
	}
	if s.st.dash != nil || s.st.lineWidth != 1 {
		t.Error("expected dash and line width reset")
	}
	bg := s.At(5, 5)
	if bg.R != Paper.R || bg.A != 255 {
		t.Errorf("expected paper background, got %+v", bg)
	}
}

func TestFillRectOpaque(t *testing.T) {
	s := New(10, 10, 1)
	s.SetFill(RGB(200, 10, 20))
	s.FillRect(2, 2, 4, 4)
	if got := s.At(3, 3); got.R != 200 || got.G != 10 || got.B != 20 {
		t.Errorf("expected fill colour, got %+v", got)
	}
	if got := s.At(8, 8); got.R != Paper.R {
		t.Errorf("pixel outside rect changed: %+v", got)
	}
}

func TestFillRectHalfAlpha(t *testing.T) {
	s := New(4, 4, 1)
	s.SetBackground(RGB(0, 0, 0))
	s.Clear()
	s.SetFill(RGBA(255, 255, 255, 0.5))
	s.FillRect(0, 0, 4, 4)
	got := s.At(1, 1)
	if got.R < 126 || got.R > 129 {
		t.Errorf("expected mid grey, got %+v", got)
	}
}

func TestFillCircleCoversCentre(t *testing.T) {
	s := New(40, 40, 1)
	s.SetFill(RGB(0, 0, 255))
	s.FillCircle(20, 20, 10)
	if got := s.At(20, 20); got.B != 255 || got.R != 0 {
		t.Errorf("expected blue centre, got %+v", got)
	}
	if got := s.At(2, 2); got.B != Paper.B || got.R != Paper.R {
		t.Errorf("corner should be untouched, got %+v", got)
	}
}

func TestStrokeCircleLeavesCentre(t *testing.T) {
	s := New(60, 60, 1)
	s.SetStroke(RGB(0, 0, 0))
	s.SetLineWidth(3)
	s.StrokeCircle(30, 30, 20)
	if got := s.At(30, 30); got.R != Paper.R {
		t.Errorf("centre of a stroked circle should be background, got %+v", got)
	}
	if got := s.At(50, 30); got.R > 100 {
		t.Errorf("expected dark ring pixel, got %+v", got)
	}
}

func TestDrawingIsDeterministic(t *testing.T) {
	paint := func() []byte {
		s := New(120, 80, 2)
		s.SetStroke(HSL(200, 0.7, 0.5))
		s.SetLineWidth(3)
		s.SetDash(5, 3)
		s.StrokeEllipse(120, 80, 60, 30, 0.3)
		s.SetDash()
		s.SetFill(HSLA(10, 0.7, 0.85, 0.6))
		s.FillCircle(40, 40, 17.5)
		s.SetFont(24, true)
		s.SetAlign(AlignCenter)
		s.Text("THIS IS TIME", 120, 150)
		return append([]byte(nil), s.Image().Pix...)
	}
	if !bytes.Equal(paint(), paint()) {
		t.Error("identical drawing calls produced different pixels")
	}
}

func TestDashLeavesGaps(t *testing.T) {
	s := New(100, 10, 1)
	s.SetStroke(RGB(0, 0, 0))
	s.SetLineWidth(2)
	s.SetDash(10, 10)
	s.Line(0, 5, 100, 5)
	if got := s.At(5, 5); got.R > 100 {
		t.Errorf("expected dash at x=5, got %+v", got)
	}
	if got := s.At(15, 5); got.R != Paper.R {
		t.Errorf("expected gap at x=15, got %+v", got)
	}
}

func TestColourAlphaClamp(t *testing.T) {
	if c := HSLA(120, 0.5, 0.5, 7); c.A != 255 {
		t.Errorf("alpha above 1 should clamp, got %d", c.A)
	}
	if c := RGBA(1, 2, 3, -4); c.A != 0 {
		t.Errorf("negative alpha should clamp, got %d", c.A)
	}
	if c := RGBA(1, 2, 3, math.NaN()); c.A != 0 {
		t.Errorf("NaN alpha should clamp to 0, got %d", c.A)
	}
	if c := HSL(-30, 1, 0.5); c != HSL(330, 1, 0.5) {
		t.Errorf("negative hue should wrap: %+v vs %+v", c, HSL(330, 1, 0.5))
	}
}

func TestHex(t *testing.T) {
	c := Hex("#C0392B")
	if c.R != 0xc0 || c.G != 0x39 || c.B != 0x2b || c.A != 255 {
		t.Errorf("unexpected colour %+v", c)
	}
	if bad := Hex("nope"); bad.R != 0 || bad.A != 255 {
		t.Errorf("malformed hex should give black, got %+v", bad)
	}
}

func TestPlainAndMeasure(t *testing.T) {
	if got := Plain("ω = E/ℏ"); got != "w = E/h" {
		t.Errorf("unexpected plain text %q", got)
	}
	s := New(10, 10, 1)
	s.SetFont(13, false)
	one := s.MeasureText("abc")
	s.SetFont(26, false)
	two := s.MeasureText("abc")
	if one != 21 || two != 42 {
		t.Errorf("expected 21 and 42, got %v and %v", one, two)
	}
}

func TestLuminance(t *testing.T) {
	s := New(8, 8, 1)
	s.SetBackground(RGB(255, 255, 255))
	s.Clear()
	if l := s.Luminance(); math.Abs(l-1) > 1e-9 {
		t.Errorf("white surface luminance %v", l)
	}
	s.SetFill(RGB(0, 0, 0))
	s.FillRect(0, 0, 8, 4)
	if l := s.Luminance(); math.Abs(l-0.5) > 1e-9 {
		t.Errorf("half black surface luminance %v", l)
	}
}
