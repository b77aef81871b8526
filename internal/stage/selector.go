package stage

import (
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/scene"
)

// Selector resolves level ids to fresh scene instances.
type Selector struct {
	registry *scene.Registry
}

// NewSelector uses r, or the built-in registry when r is nil.
func NewSelector(r *scene.Registry) *Selector {
	if r == nil {
		r = scene.Default
	}
	return &Selector{registry: r}
}

// Select builds a new instance of the scene for levelID. Unknown ids panic;
// callers validate user input with level.Lookup first.
func (s *Selector) Select(levelID int, opts scene.Options) scene.Scene {
	return s.registry.New(level.MustGet(levelID).Scene, opts)
}

func (s *Selector) Registry() *scene.Registry { return s.registry }
