package stage_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/logger"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
	"github.com/san-kum/phasetime/internal/stage"
	"github.com/san-kum/phasetime/internal/surface"
)

// counting records every render call it receives.
type counting struct {
	kind  scene.Kind
	times []float64
	seen  []params.Params
}

func (c *counting) Render(_ *surface.Surface, t float64, p params.Params) {
	c.times = append(c.times, t)
	c.seen = append(c.seen, p)
}
func (c *counting) Kind() scene.Kind { return c.kind }

var _ = Describe("Stage", func() {
	var (
		q       *clock.FrameQueue
		store   *params.Store
		reg     *scene.Registry
		built   map[scene.Kind][]*counting
		st      *stage.Stage
		start   time.Time
		frames  []stage.Frame
		step    func(sec float64)
		options func() stage.Options
	)

	BeforeEach(func() {
		q = clock.NewFrameQueue()
		store = params.NewStore(params.Default())
		reg = scene.NewRegistry()
		built = map[scene.Kind][]*counting{}
		for _, k := range []scene.Kind{scene.QFT, scene.PathIntegral, scene.Phasor} {
			k := k
			reg.Register(k, func(scene.Options) scene.Scene {
				c := &counting{kind: k}
				built[k] = append(built[k], c)
				return c
			})
		}
		start = time.Unix(100, 0)
		frames = nil
		step = func(sec float64) { q.Step(start.Add(time.Duration(sec * float64(time.Second)))) }
		options = func() stage.Options {
			return stage.Options{
				Scheduler: q,
				Store:     store,
				Surface:   surface.New(64, 48, 1),
				Selector:  stage.NewSelector(reg),
				OnFrame:   func(f stage.Frame) { frames = append(frames, f) },
				Logger:    logger.Discard(),
			}
		}
		st = stage.New(options())
	})

	AfterEach(func() { st.Close() })

	It("starts each mount at time zero and advances with wall time", func() {
		Expect(st.Mount(3)).To(Succeed())
		step(0)
		step(0.5)
		step(1.0)
		step(1.5)
		Expect(built[scene.QFT]).To(HaveLen(1))
		Expect(built[scene.QFT][0].times).To(Equal([]float64{0, 0.5, 1.0, 1.5}))
		Expect(st.Time()).To(Equal(1.5))
		Expect(st.Frames()).To(BeEquivalentTo(4))
	})

	It("stops the old scene and resets time when switching from 3 to 7", func() {
		Expect(st.Mount(3)).To(Succeed())
		step(0)
		step(1)
		step(2)
		old := built[scene.QFT][0]
		Expect(old.times).To(HaveLen(3))

		Expect(st.Switch(7)).To(Succeed())
		Expect(st.Time()).To(BeZero())
		Expect(st.Level()).To(Equal(7))

		for i := 3; i < 13; i++ {
			step(float64(i))
		}
		Expect(old.times).To(HaveLen(3))
		fresh := built[scene.PathIntegral][0]
		Expect(fresh.times).To(HaveLen(10))
		Expect(fresh.times[0]).To(BeZero())
		Expect(fresh.times[9]).To(Equal(9.0))
		Expect(q.Pending()).To(Equal(1))
	})

	It("builds a fresh instance on every switch back", func() {
		Expect(st.Mount(3)).To(Succeed())
		Expect(st.Switch(7)).To(Succeed())
		Expect(st.Switch(3)).To(Succeed())
		Expect(built[scene.QFT]).To(HaveLen(2))
		step(0)
		Expect(built[scene.QFT][0].times).To(BeEmpty())
		Expect(built[scene.QFT][1].times).To(HaveLen(1))
	})

	It("hands every frame one parameter snapshot", func() {
		Expect(st.Mount(8)).To(Succeed())
		step(0)
		store.Set(params.WithSpeed(2.5))
		step(1)
		c := built[scene.Phasor][0]
		Expect(c.seen[0].Speed).To(Equal(1.0))
		Expect(c.seen[1]).To(Equal(params.Params{Speed: 2.5, Omega: params.DefaultOmega, Couple: params.DefaultCouple}))
		Expect(c.times[1]).To(Equal(2.5))
	})

	It("does not count wall time spent paused", func() {
		Expect(st.Mount(3)).To(Succeed())
		step(0)
		step(1)
		st.Pause()
		Expect(st.Paused()).To(BeTrue())
		step(2)
		step(30)
		st.Resume()
		step(40)
		step(40.5)
		Expect(built[scene.QFT][0].times).To(Equal([]float64{0, 1, 1, 1.5}))
	})

	It("toggles pause", func() {
		Expect(st.Mount(3)).To(Succeed())
		Expect(st.Toggle()).To(BeTrue())
		Expect(st.Toggle()).To(BeFalse())
	})

	It("remounts the active level on Reset", func() {
		Expect(st.Reset()).To(MatchError(stage.ErrNotMounted))
		Expect(st.Mount(3)).To(Succeed())
		step(0)
		step(5)
		Expect(st.Reset()).To(Succeed())
		Expect(st.Time()).To(BeZero())
		Expect(built[scene.QFT]).To(HaveLen(2))
	})

	It("renders nothing after Close", func() {
		Expect(st.Mount(3)).To(Succeed())
		step(0)
		st.Close()
		for i := 1; i <= 5; i++ {
			step(float64(i))
		}
		Expect(built[scene.QFT][0].times).To(HaveLen(1))
		Expect(st.Mount(7)).To(MatchError(stage.ErrClosed))
		_, _, ok := st.Active()
		Expect(ok).To(BeFalse())
	})

	It("reports frames with level and time", func() {
		Expect(st.Mount(7)).To(Succeed())
		step(0)
		step(0.25)
		Expect(frames).To(HaveLen(2))
		Expect(frames[1].Level).To(Equal(7))
		Expect(frames[1].Kind).To(Equal(scene.PathIntegral))
		Expect(frames[1].Time).To(Equal(0.25))
		Expect(frames[1].Index).To(BeEquivalentTo(2))
	})

	It("refits the surface to the viewport each frame", func() {
		w, h, dpr := 100, 50, 1.0
		opts := options()
		opts.Viewport = func() (int, int, float64) { return w, h, dpr }
		vst := stage.New(opts)
		defer vst.Close()

		Expect(vst.Mount(3)).To(Succeed())
		step(0)
		Expect(vst.Surface().W()).To(Equal(100.0))
		dpr = 2
		step(1)
		Expect(vst.Surface().W()).To(Equal(200.0))
		Expect(vst.Surface().H()).To(Equal(100.0))
	})

	It("panics on a level outside the catalog", func() {
		Expect(func() { _ = st.Mount(99) }).To(Panic())
	})
})

var _ = Describe("Seeded stages", func() {
	render := func(seed int64) [][]byte {
		q := clock.NewFrameQueue()
		var out [][]byte
		st := stage.New(stage.Options{
			Scheduler: q,
			Surface:   surface.New(80, 60, 1),
			Seed:      seed,
			Logger:    logger.Discard(),
			OnFrame: func(f stage.Frame) {
				out = append(out, append([]byte(nil), f.Surface.Image().Pix...))
			},
		})
		defer st.Close()
		Expect(st.Mount(2)).To(Succeed())
		base := time.Unix(0, 0)
		for i := 0; i < 5; i++ {
			q.Step(base.Add(time.Duration(i) * 100 * time.Millisecond))
		}
		return out
	}

	It("replay a stateful level frame for frame", func() {
		a, b := render(42), render(42)
		Expect(a).To(HaveLen(5))
		for i := range a {
			Expect(bytes.Equal(a[i], b[i])).To(BeTrue(), "frame %d differs", i)
		}
	})
})
