package clock_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phasetime/internal/clock"
)

var _ = Describe("FrameQueue", func() {
	It("runs only callbacks queued before the step", func() {
		q := clock.NewFrameQueue()
		var order []int
		q.Schedule(func(time.Time) {
			order = append(order, 1)
			q.Schedule(func(time.Time) { order = append(order, 3) })
		})
		q.Schedule(func(time.Time) { order = append(order, 2) })

		Expect(q.Step(time.Now())).To(Equal(2))
		Expect(order).To(Equal([]int{1, 2}))
		Expect(q.Pending()).To(Equal(1))

		q.Step(time.Now())
		Expect(order).To(Equal([]int{1, 2, 3}))
	})

	It("drops cancelled callbacks", func() {
		q := clock.NewFrameQueue()
		called := false
		h := q.Schedule(func(time.Time) { called = true })
		q.Cancel(h)
		Expect(q.Step(time.Now())).To(Equal(0))
		Expect(called).To(BeFalse())
	})
})

var _ = Describe("Loop", func() {
	var (
		q     *clock.FrameQueue
		start time.Time
		seen  []float64
		speed float64
	)

	frame := func(t float64) { seen = append(seen, t) }
	at := func(sec float64) time.Time { return start.Add(time.Duration(sec * float64(time.Second))) }

	BeforeEach(func() {
		q = clock.NewFrameQueue()
		start = time.Unix(10, 0)
		seen = nil
		speed = 1
	})

	It("delivers exactly one frame per step, starting at zero", func() {
		l := clock.Start(q, func() float64 { return speed }, frame)
		q.Step(at(0))
		q.Step(at(0.5))
		q.Step(at(1.0))
		q.Step(at(1.5))
		Expect(seen).To(Equal([]float64{0, 0.5, 1.0, 1.5}))
		Expect(l.Frames()).To(BeEquivalentTo(4))
	})

	It("reads speed on every tick", func() {
		clock.Start(q, func() float64 { return speed }, frame)
		q.Step(at(0))
		q.Step(at(0.5))
		speed = 2
		q.Step(at(1.0))
		Expect(seen[len(seen)-1]).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("fires no frames after Stop", func() {
		l := clock.Start(q, func() float64 { return speed }, frame)
		q.Step(at(0))
		l.Stop()
		for i := 1; i <= 10; i++ {
			q.Step(at(float64(i)))
		}
		Expect(seen).To(HaveLen(1))
		Expect(l.Alive()).To(BeFalse())
		Expect(q.Pending()).To(Equal(0))
	})

	It("ignores a tick that was already dequeued when Stop ran", func() {
		var l *clock.Loop
		other := clock.Start(q, func() float64 { return speed }, func(float64) { l.Stop() })
		l = clock.Start(q, func() float64 { return speed }, frame)
		q.Step(at(0))
		Expect(seen).To(BeEmpty())
		other.Stop()
	})

	It("continues an existing clock without counting the gap", func() {
		l := clock.Start(q, func() float64 { return speed }, frame)
		q.Step(at(0))
		q.Step(at(1))
		l.Stop()

		l = clock.Continue(q, l.Clock(), func() float64 { return speed }, frame)
		q.Step(at(5))
		q.Step(at(5.5))
		Expect(seen).To(Equal([]float64{0, 1, 1, 1.5}))
		Expect(l.Time()).To(Equal(1.5))
	})

	It("tolerates repeated Stop", func() {
		l := clock.Start(q, func() float64 { return speed }, frame)
		l.Stop()
		Expect(l.Stop).NotTo(Panic())
	})
})

var _ = Describe("Run", func() {
	It("steps the queue until the context ends", func() {
		q := clock.NewFrameQueue()
		ctx, cancel := context.WithCancel(context.Background())
		frames := make(chan float64, 64)
		clock.Start(q, func() float64 { return 1 }, func(t float64) {
			select {
			case frames <- t:
			default:
			}
		})

		done := make(chan error, 1)
		go func() { done <- clock.Run(ctx, q, time.Millisecond) }()

		Eventually(frames).Should(Receive())
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	It("rejects a zero interval", func() {
		err := clock.Run(context.Background(), clock.NewFrameQueue(), 0)
		Expect(err).To(MatchError(clock.ErrInterval))
	})
})
