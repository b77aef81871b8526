package scene

import (
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

// Kind names a scene implementation.
type Kind string

const (
	Mystery         Kind = "mystery"
	Decoherence     Kind = "decoherence"
	ArrowOfTime     Kind = "arrow-of-time"
	QFT             Kind = "qft"
	Network         Kind = "network"
	Bloch           Kind = "bloch"
	BornRule        Kind = "born-rule"
	PathIntegral    Kind = "path-integral"
	Phasor          Kind = "phasor"
	Spacetime       Kind = "spacetime"
	QuantumGravity  Kind = "quantum-gravity"
	StringTheory    Kind = "string-theory"
	LoopQG          Kind = "loop-qg"
	EmergentGravity Kind = "emergent-gravity"
	Wave1D          Kind = "wave-1d"
	Field2D         Kind = "field-2d"
	Classical       Kind = "classical"
	StandardModel   Kind = "standard-model"
	Symmetry        Kind = "symmetry"
)

type Scene interface {
	// Render paints a full frame for simulation time t. The surface is
	// expected to have been cleared by the caller.
	Render(s *surface.Surface, t float64, p params.Params)
	Kind() Kind
}

// Stateful is implemented by scenes whose output depends on earlier frames.
type Stateful interface {
	Stateful() bool
}

// IsStateful reports whether sc carries state between frames.
func IsStateful(sc Scene) bool {
	st, ok := sc.(Stateful)
	return ok && st.Stateful()
}

type Options struct {
	// Seed drives any random initial conditions. Zero picks a fresh seed.
	Seed int64
}

type Factory func(Options) Scene

// DrawFunc is a stateless scene body.
type DrawFunc func(s *surface.Surface, t float64, p params.Params)

type funcScene struct {
	kind Kind
	draw DrawFunc
}

func (f funcScene) Render(s *surface.Surface, t float64, p params.Params) { f.draw(s, t, p) }
func (f funcScene) Kind() Kind                                            { return f.kind }

// Stateless wraps a draw function as a scene factory.
func Stateless(kind Kind, draw DrawFunc) Factory {
	sc := funcScene{kind: kind, draw: draw}
	return func(Options) Scene { return sc }
}
