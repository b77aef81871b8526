package clock

import (
	"math"
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		deltas []time.Duration
		want   float64
	}{
		{"unit speed", 1, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}, 1.5},
		{"double speed", 2, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}, 3.0},
		{"negative delta ignored", 1, []time.Duration{time.Second, -3 * time.Second, time.Second}, 2.0},
		{"no deltas", 1.5, nil, 0},
	}

	for _, tt := range tests {
		got := 0.0
		for _, d := range tt.deltas {
			got = Advance(got, d, tt.speed)
		}
		if got != tt.want {
			t.Errorf("%s: expected %.6f, got %.6f", tt.name, tt.want, got)
		}
	}
}

func TestAdvanceChunking(t *testing.T) {
	deltas := []time.Duration{
		16 * time.Millisecond, 17 * time.Millisecond, 33 * time.Millisecond,
		250 * time.Millisecond, 4 * time.Millisecond, 900 * time.Millisecond,
	}
	speed := 1.7

	var total time.Duration
	stepwise := 0.0
	for _, d := range deltas {
		stepwise = Advance(stepwise, d, speed)
		total += d
	}
	whole := Advance(0, total, speed)

	split := Advance(0, deltas[0]+deltas[1]+deltas[2], speed)
	split = Advance(split, deltas[3]+deltas[4]+deltas[5], speed)

	for _, got := range []float64{stepwise, split} {
		if math.Abs(got-whole) > 1e-9 {
			t.Errorf("chunked accumulation %.12f differs from whole %.12f", got, whole)
		}
	}
	if math.Abs(whole-speed*total.Seconds()) > 1e-12 {
		t.Errorf("expected %.6f, got %.6f", speed*total.Seconds(), whole)
	}
}

func TestClockBaseline(t *testing.T) {
	c := &Clock{}
	t0 := time.Unix(1000, 0)

	if got := c.Sample(t0, 1); got != 0 {
		t.Errorf("first sample should establish baseline, got %f", got)
	}
	if got := c.Sample(t0.Add(500*time.Millisecond), 1); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := c.Sample(t0.Add(250*time.Millisecond), 1); got != 0.5 {
		t.Errorf("clock went backwards: %f", got)
	}
	if got := c.Sample(t0.Add(time.Second), 2); got != 1.5 {
		t.Errorf("expected 1.5 after backward sample, got %f", got)
	}

	c.Reset()
	if c.Time() != 0 {
		t.Errorf("reset should zero time, got %f", c.Time())
	}
}

func TestClockRebase(t *testing.T) {
	t0 := time.Unix(50, 0)
	c := New(t0)
	c.Sample(t0.Add(time.Second), 1)
	c.Rebase()
	c.Sample(t0.Add(10*time.Second), 1)
	if got := c.Sample(t0.Add(11*time.Second), 1); got != 2 {
		t.Errorf("expected paused wall time to be skipped, got %f", got)
	}
}
