package params

import "math"

// Range describes one user control.
type Range struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	Step  float64
}

var (
	SpeedRange  = Range{Name: "speed", Label: "Speed (global)", Min: 0.1, Max: 3, Step: 0.1}
	OmegaRange  = Range{Name: "omega", Label: "omega (phasor)", Min: 0.05, Max: 2, Step: 0.05}
	CoupleRange = Range{Name: "couple", Label: "Coupling strength", Min: 0, Max: 1, Step: 0.05}
)

// Ranges lists the controls in display order.
var Ranges = []Range{SpeedRange, OmegaRange, CoupleRange}

func RangeFor(name string) (Range, bool) {
	for _, r := range Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Snap clamps v and rounds it onto the step grid anchored at Min.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Step <= 0 {
		return v
	}
	n := math.Round((v - r.Min) / r.Step)
	snapped := r.Min + n*r.Step
	// trim binary noise from the multiplication
	snapped = math.Round(snapped*1e9) / 1e9
	return r.Clamp(snapped)
}

// Nudge moves v by dir steps and snaps the result.
func (r Range) Nudge(v float64, dir int) float64 {
	return r.Snap(v + float64(dir)*r.Step)
}

// Ratio maps v onto [0,1] across the range.
func (r Range) Ratio(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// Clamp snaps every field of p into its control range.
func Clamp(p Params) Params {
	return Params{
		Speed:  SpeedRange.Clamp(p.Speed),
		Omega:  OmegaRange.Clamp(p.Omega),
		Couple: CoupleRange.Clamp(p.Couple),
	}
}
