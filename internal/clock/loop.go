package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop ticks one frame callback per scheduler frame until stopped.
type Loop struct {
	sched  Scheduler
	clock  *Clock
	speed  func() float64
	frame  func(t float64)
	alive  atomic.Bool
	frames atomic.Int64

	mu     sync.Mutex
	handle Handle
}

// Start schedules the first tick and returns the running loop. speed is read
// on every tick so parameter changes apply from the next frame.
func Start(sched Scheduler, speed func() float64, frame func(t float64)) *Loop {
	return Continue(sched, &Clock{}, speed, frame)
}

// Continue starts a loop on an existing clock. The clock is rebased, so wall
// time spent before the first tick is not counted.
func Continue(sched Scheduler, c *Clock, speed func() float64, frame func(t float64)) *Loop {
	c.Rebase()
	l := &Loop{
		sched: sched,
		clock: c,
		speed: speed,
		frame: frame,
	}
	l.alive.Store(true)
	l.schedule()
	return l
}

func (l *Loop) schedule() {
	l.mu.Lock()
	l.handle = l.sched.Schedule(l.tick)
	l.mu.Unlock()
}

func (l *Loop) tick(now time.Time) {
	// a tick dequeued before Stop still lands here
	if !l.alive.Load() {
		return
	}
	t := l.clock.Sample(now, l.speed())
	l.frames.Add(1)
	l.frame(t)
	if l.alive.Load() {
		l.schedule()
	}
}

// Stop cancels the loop. No frame callback runs after Stop returns.
func (l *Loop) Stop() {
	if !l.alive.Swap(false) {
		return
	}
	l.mu.Lock()
	h := l.handle
	l.mu.Unlock()
	l.sched.Cancel(h)
}

func (l *Loop) Alive() bool   { return l.alive.Load() }
func (l *Loop) Frames() int64 { return l.frames.Load() }
func (l *Loop) Time() float64 { return l.clock.Time() }
func (l *Loop) Clock() *Clock { return l.clock }
