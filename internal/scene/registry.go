package scene

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps kinds to factories. Lookups of unknown kinds panic: the set
// of kinds is closed and fixed at build time.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
}

// Default holds every built-in scene.
var Default = NewRegistry()

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[Kind]Factory)}

	r.factories[Mystery] = Stateless(Mystery, drawMystery)
	r.factories[Decoherence] = Stateless(Decoherence, drawDecoherence)
	r.factories[ArrowOfTime] = func(o Options) Scene { return NewArrowOfTime(o) }
	r.factories[QFT] = Stateless(QFT, drawQFT)
	r.factories[Network] = Stateless(Network, drawNetwork)
	r.factories[Bloch] = Stateless(Bloch, drawBloch)
	r.factories[BornRule] = Stateless(BornRule, drawBornRule)
	r.factories[PathIntegral] = func(o Options) Scene { return NewPathIntegral(o) }
	r.factories[Phasor] = Stateless(Phasor, drawPhasor)
	r.factories[Spacetime] = Stateless(Spacetime, drawSpacetime)
	r.factories[QuantumGravity] = Stateless(QuantumGravity, drawQuantumGravity)
	r.factories[StringTheory] = Stateless(StringTheory, drawStringTheory)
	r.factories[LoopQG] = Stateless(LoopQG, drawLoopQG)
	r.factories[EmergentGravity] = Stateless(EmergentGravity, drawEmergentGravity)
	r.factories[Wave1D] = Stateless(Wave1D, drawWave1D)
	r.factories[Field2D] = Stateless(Field2D, drawField2D)
	r.factories[Classical] = Stateless(Classical, drawClassical)
	r.factories[StandardModel] = Stateless(StandardModel, drawStandardModel)
	r.factories[Symmetry] = Stateless(Symmetry, drawSymmetry)

	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind Kind, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}

// New builds a fresh instance of kind.
func (r *Registry) New(kind Kind, opts Options) Scene {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("scene: unknown kind %q", kind))
	}
	return f(opts)
}

// Kinds lists registered kinds in name order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse resolves a kind name, for command-line flags.
func (r *Registry) Parse(name string) (Kind, error) {
	k := Kind(name)
	if !r.Has(k) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}
