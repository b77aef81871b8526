// Package audio sonifies the shared parameters: a soft pad whose pitch
// follows omega and whose low-pass filter opens with coupling.
package audio

import (
	"log/slog"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/phasetime/internal/params"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Gm7 add9, the pad's chord at omega = DefaultOmega.
var chord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Levels are smoothed output band energies in [0,1], for meters.
type Levels struct {
	Bass, Mid, High float64
}

type Processor struct {
	stream *portaudio.Stream
	log    *slog.Logger

	mu     sync.Mutex
	target params.Params
	volume float64
	levels Levels

	// synthesis state, owned by the audio callback
	time        float64
	omegaSmooth float64
	coupleSmth  float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
	mono        []complex128
	maxLevel    float64

	active bool
}

func NewProcessor(volume float64, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	delayLen := int(float64(SampleRate) * 0.6)
	p := params.Default()
	return &Processor{
		log:         log,
		target:      p,
		volume:      math.Max(0, math.Min(1, volume)),
		omegaSmooth: p.Omega,
		coupleSmth:  p.Couple,
		delayLine:   [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		mono:        make([]complex128, BufferSize),
		maxLevel:    0.1,
	}
}

// Start opens the default output device.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	// output only; duplex streams often fail on Linux when devices differ
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.stream = stream
	a.active = true
	a.log.Info("audio started", "rate", SampleRate, "buffer", BufferSize)
	return nil
}

func (a *Processor) Stop() {
	if !a.active {
		return
	}
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
		a.stream = nil
	}
	portaudio.Terminate()
	a.active = false
	a.log.Debug("audio stopped")
}

func (a *Processor) Active() bool { return a.active }

// SetParams is safe to call from any goroutine, typically as a
// params.Store change listener.
func (a *Processor) SetParams(p params.Params) {
	a.mu.Lock()
	a.target = p
	a.mu.Unlock()
}

func (a *Processor) Levels() Levels {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.levels
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// one-pole low-pass
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Pitch is the multiplier applied to the chord for omega: one octave per
// doubling of omega from its default, limited to two octaves either way.
func Pitch(omega float64) float64 {
	if omega <= 0 || math.IsNaN(omega) {
		return 0.25
	}
	k := math.Log2(omega / params.DefaultOmega)
	return math.Pow(2, math.Max(-2, math.Min(2, k)))
}

// Cutoff maps coupling in [0,1] to a filter cutoff in Hz.
func Cutoff(couple float64) float64 {
	c := math.Max(0, math.Min(1, couple))
	return 300 + 900*c
}

// Process fills out with the next buffer. It is the portaudio callback.
func (a *Processor) Process(out [][]float32) {
	a.mu.Lock()
	target, vol := a.target, a.volume
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	n := len(out[0])
	for i := 0; i < n; i++ {
		// glide so slider steps do not click
		a.omegaSmooth += (target.Omega - a.omegaSmooth) * 0.0005
		a.coupleSmth += (target.Couple - a.coupleSmth) * 0.0005
		pitch := Pitch(a.omegaSmooth)
		cutoff := Cutoff(a.coupleSmth)

		var sampleL, sampleR float64
		g := 1.0 / float64(len(chord))
		for j, f := range chord {
			f *= pitch
			oscL := triangle(a.time * f * 0.999)
			oscR := triangle(a.time * f * 1.001)
			lfo := math.Sin(a.time*0.2 + float64(j))
			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		a.filterState[0] = lpf(sampleL, cutoff, dt, a.filterState[0])
		a.filterState[1] = lpf(sampleR, cutoff, dt, a.filterState[1])
		outL, outR := a.filterState[0], a.filterState[1]

		delayL := a.delayLine[0][a.delayHead]
		delayR := a.delayLine[1][a.delayHead]
		// ping-pong feedback
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1
		a.delayLine[0][a.delayHead] = mixL * 0.7
		a.delayLine[1][a.delayHead] = mixR * 0.7
		a.delayHead = (a.delayHead + 1) % len(a.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)
		if i < len(a.mono) {
			a.mono[i] = complex((mixL+mixR)/2, 0)
		}
		a.time += dt
	}
	a.analyze(n)
}

// analyze bands the FFT of the last buffer into smoothed levels.
func (a *Processor) analyze(n int) {
	n = min(n, len(a.mono))
	if n == 0 {
		return
	}
	buf := make([]complex128, n)
	for i := 0; i < n; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(max(n-1, 1))))
		buf[i] = a.mono[i] * complex(w, 0)
	}
	spectrum := fft.FFT(buf)

	// bins are SampleRate/n Hz wide: bass < 200 Hz, mid < 2 kHz
	binHz := float64(SampleRate) / float64(n)
	var bass, mid, high float64
	for i := 1; i < n/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch f := float64(i) * binHz; {
		case f < 200:
			bass += mag
		case f < 2000:
			mid += mag
		default:
			high += mag
		}
	}

	// AGC
	peak := math.Max(bass, math.Max(mid, high))
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= 0.999
	}
	gain := 1.0
	if a.maxLevel > 1e-3 {
		gain = 1 / a.maxLevel
	}

	a.mu.Lock()
	a.levels.Bass = a.levels.Bass*0.9 + math.Min(bass*gain, 1)*0.1
	a.levels.Mid = a.levels.Mid*0.9 + math.Min(mid*gain, 1)*0.1
	a.levels.High = a.levels.High*0.9 + math.Min(high*gain, 1)*0.1
	a.mu.Unlock()
}
