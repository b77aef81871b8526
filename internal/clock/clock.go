package clock

import "time"

// Advance returns prev advanced by dt scaled by speed. Negative dt counts as
// zero so clock irregularities never run simulation time backwards.
func Advance(prev float64, dt time.Duration, speed float64) float64 {
	if dt < 0 {
		dt = 0
	}
	return prev + dt.Seconds()*speed
}

// Clock accumulates simulation time for one mounted scene.
type Clock struct {
	t       float64
	last    time.Time
	sampled bool
}

// New returns a clock at time zero whose baseline is start.
func New(start time.Time) *Clock {
	return &Clock{last: start, sampled: true}
}

// Sample advances the clock to now and returns the new simulation time.
// The first sample after Reset only records the baseline.
func (c *Clock) Sample(now time.Time, speed float64) float64 {
	if !c.sampled {
		c.last = now
		c.sampled = true
		return c.t
	}
	c.t = Advance(c.t, now.Sub(c.last), speed)
	if now.After(c.last) {
		c.last = now
	}
	return c.t
}

// Rebase forgets the last wall instant without touching simulation time.
func (c *Clock) Rebase() { c.sampled = false }

// Reset returns the clock to time zero with no baseline.
func (c *Clock) Reset() {
	c.t = 0
	c.sampled = false
}

func (c *Clock) Time() float64 { return c.t }
