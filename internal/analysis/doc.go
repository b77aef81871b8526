// Package analysis measures scenes as signals.
//
// A scene is rendered headless at fixed simulated-time steps and reduced to
// its mean luminance per frame:
//
//   - [Trace]: luminance series of one scene kind
//   - [Spectrum] and [Dominant]: power spectrum of a series via go-dsp
//   - [Sweep]: dominant frequency as one parameter is swept across its range
//   - [NewPortrait]: luminance against its rate of change, for ASCII plotting
//
// Periodic scenes show a sharp dominant peak whose frequency tracks speed
// and, for the phasor scenes, omega:
//
//	s, _ := analysis.Trace(scene.Phasor, analysis.Options{Duration: 20})
//	peak := analysis.Dominant(s)
package analysis
