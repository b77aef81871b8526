package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Peak is one spectral line.
type Peak struct {
	Freq  float64 // Hz
	Power float64
}

// Spectrum returns the one-sided power spectrum of values sampled every dt
// seconds. The mean is removed and a Hann window applied first.
func Spectrum(values []float64, dt float64) (freqs, power []float64) {
	n := len(values)
	if n < 2 || dt <= 0 {
		return nil, nil
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range values {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)
	spec := fft.FFTReal(x)

	half := n/2 + 1
	freqs = make([]float64, half)
	power = make([]float64, half)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		a := cmplx.Abs(spec[k])
		power[k] = a * a / float64(n)
	}
	return freqs, power
}

// Dominant is the strongest non-DC line of s.
func Dominant(s *Series) Peak {
	freqs, power := Spectrum(s.Values, s.Dt)
	best := Peak{}
	for k := 1; k < len(power); k++ {
		if power[k] > best.Power {
			best = Peak{Freq: freqs[k], Power: power[k]}
		}
	}
	return best
}

// Bands sums power into n equal-width bands up to the Nyquist frequency.
func Bands(power []float64, n int) []float64 {
	if n <= 0 || len(power) == 0 {
		return nil
	}
	out := make([]float64, n)
	for k, p := range power {
		b := k * n / len(power)
		out[b] += p
	}
	return out
}
