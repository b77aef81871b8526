package clock

import (
	"sync"
	"time"
)

// Handle identifies one scheduled callback.
type Handle uint64

// Scheduler is the host's display-refresh mechanism: callbacks run once, on
// the next frame.
type Scheduler interface {
	Schedule(fn func(now time.Time)) Handle
	Cancel(h Handle)
}

type queued struct {
	h  Handle
	fn func(now time.Time)
}

// FrameQueue is a manually stepped Scheduler.
type FrameQueue struct {
	mu    sync.Mutex
	next  Handle
	queue []queued
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{queue: make([]queued, 0, 4)}
}

func (q *FrameQueue) Schedule(fn func(now time.Time)) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.queue = append(q.queue, queued{h: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.queue {
		if e.h == h {
			q.queue = append(q.queue[:i], q.queue[i+1:]...)
			return
		}
	}
}

// Step runs every callback queued before the call. Callbacks scheduled while
// stepping wait for the next Step. It returns the number of callbacks run.
func (q *FrameQueue) Step(now time.Time) int {
	q.mu.Lock()
	batch := q.queue
	q.queue = make([]queued, 0, len(batch))
	q.mu.Unlock()

	for _, e := range batch {
		e.fn(now)
	}
	return len(batch)
}

func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}
