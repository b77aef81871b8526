package analysis

import (
	"sync"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
)

// SweepPoint is the response of a scene at one parameter value.
type SweepPoint struct {
	Param    float64
	Dominant Peak
	Mean     float64
	Std      float64
}

// Sweep traces kind at steps values of the named control spread across its
// range, holding the other controls at opts.Params.
func Sweep(kind scene.Kind, field string, steps int, opts Options) ([]SweepPoint, error) {
	r, ok := params.RangeFor(field)
	if !ok {
		return nil, ErrField
	}
	if steps < 2 {
		steps = 2
	}
	opts = opts.withDefaults()
	base := opts.Params

	// traces share nothing but the registry, so each step runs on its own
	// goroutine
	out := make([]SweepPoint, steps)
	errs := make([]error, steps)
	var wg sync.WaitGroup
	for i := 0; i < steps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v := r.Min + (r.Max-r.Min)*float64(idx)/float64(steps-1)
			o := opts
			o.Params = params.Set(field, v).Apply(base)
			s, err := Trace(kind, o)
			if err != nil {
				errs[idx] = err
				return
			}
			out[idx] = SweepPoint{
				Param:    v,
				Dominant: Dominant(s),
				Mean:     s.Mean(),
				Std:      s.Std(),
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
