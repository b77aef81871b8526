// Package clock turns wall-clock frames into simulation time.
//
// The pieces, leaves first:
//
//   - [Advance]: the pure accumulation rule, prev + max(dt, 0)*speed
//   - [Clock]: remembers the last sampled wall instant for one mounted scene
//   - [Scheduler]: the host's per-frame callback mechanism
//   - [FrameQueue]: a manual, single-threaded [Scheduler] stepped by the host
//   - [Loop]: a self-rescheduling frame callback with a liveness flag
//
// # Example
//
//	q := clock.NewFrameQueue()
//	loop := clock.Start(q, store.Speed, func(t float64) { sc.Render(s, t, store.Get()) })
//	q.Step(time.Now()) // one frame
//	loop.Stop()        // no further frames, even if one is queued
//
// # Thread Safety
//
// FrameQueue and Loop may be stopped from any goroutine. Frame callbacks run
// on whichever goroutine calls [FrameQueue.Step]; they never run concurrently
// with each other.
package clock
