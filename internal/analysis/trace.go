package analysis

import (
	"math"
	"time"

	"github.com/san-kum/phasetime/internal/clock"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
	"github.com/san-kum/phasetime/internal/surface"
)

// Options controls a headless trace. Zero fields take defaults.
type Options struct {
	Width, Height int
	DPR           float64
	// Duration and Dt are wall-clock seconds; simulated time advances by
	// Dt*Params.Speed per sample, as it does under a running clock.
	Duration float64
	Dt       float64
	Seed     int64
	Params   params.Params
	Registry *scene.Registry
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 240
	}
	if o.Height <= 0 {
		o.Height = 150
	}
	if o.DPR <= 0 {
		o.DPR = 1
	}
	if o.Duration <= 0 {
		o.Duration = 20
	}
	if o.Dt <= 0 {
		o.Dt = 1.0 / 30
	}
	if o.Params == (params.Params{}) {
		o.Params = params.Default()
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	if o.Registry == nil {
		o.Registry = scene.Default
	}
	return o
}

// Series is a signal sampled every Dt wall-clock seconds.
type Series struct {
	Kind   scene.Kind
	Dt     float64
	Times  []float64
	Values []float64
}

func (s *Series) Len() int { return len(s.Values) }

// Mean and Std of the values.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

func (s *Series) Std() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	m := s.Mean()
	acc := 0.0
	for _, v := range s.Values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(len(s.Values)))
}

// Trace renders a fresh instance of kind once per Dt of wall time and
// records the mean luminance of each frame.
func Trace(kind scene.Kind, opts Options) (*Series, error) {
	opts = opts.withDefaults()
	n := int(opts.Duration / opts.Dt)
	if n < 2 {
		return nil, ErrDuration
	}
	sc := opts.Registry.New(kind, scene.Options{Seed: opts.Seed})
	surf := surface.New(opts.Width, opts.Height, opts.DPR)

	s := &Series{
		Kind:   kind,
		Dt:     opts.Dt,
		Times:  make([]float64, n),
		Values: make([]float64, n),
	}
	step := time.Duration(opts.Dt * float64(time.Second))
	t := 0.0
	for i := 0; i < n; i++ {
		if i > 0 {
			t = clock.Advance(t, step, opts.Params.Speed)
		}
		surf.Clear()
		sc.Render(surf, t, opts.Params)
		s.Times[i] = float64(i) * opts.Dt
		s.Values[i] = surf.Luminance()
	}
	return s, nil
}
