// Package level holds the fixed, ordered curriculum. Each level pairs a scene
// with explanatory text; the catalog is embedded and parsed once at startup.
package level

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasetime/internal/scene"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Companion is the longer per-level commentary.
type Companion struct {
	Problem string `yaml:"problem"`
	Idea    string `yaml:"idea"`
	Why     string `yaml:"why"`
	Bridge  string `yaml:"bridge"`
}

type Level struct {
	ID          int        `yaml:"id"`
	Title       string     `yaml:"title"`
	Subtitle    string     `yaml:"subtitle"`
	Description string     `yaml:"description"`
	Math        string     `yaml:"math"`
	Link        string     `yaml:"link"`
	Companion   Companion  `yaml:"companion"`
	Scene       scene.Kind `yaml:"-"`
}

// scenes is the level to scene mapping, indexed by level id.
var scenes = []scene.Kind{
	scene.Mystery,
	scene.Decoherence,
	scene.ArrowOfTime,
	scene.QFT,
	scene.Network,
	scene.Bloch,
	scene.BornRule,
	scene.PathIntegral,
	scene.Phasor,
	scene.Spacetime,
	scene.QuantumGravity,
	scene.StringTheory,
	scene.LoopQG,
	scene.EmergentGravity,
}

var (
	loadOnce sync.Once
	catalog  []Level
)

// Parse decodes a catalog document and checks that ids are dense from zero
// and that each has a scene.
func Parse(data []byte) ([]Level, error) {
	var doc struct {
		Levels []Level `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	if len(doc.Levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrCatalog)
	}
	for i := range doc.Levels {
		l := &doc.Levels[i]
		if l.ID != i {
			return nil, fmt.Errorf("%w: level at position %d has id %d", ErrCatalog, i, l.ID)
		}
		if i >= len(scenes) {
			return nil, fmt.Errorf("%w: level %d has no scene", ErrCatalog, i)
		}
		l.Scene = scenes[i]
	}
	return doc.Levels, nil
}

func load() []Level {
	loadOnce.Do(func() {
		ls, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		catalog = ls
	})
	return catalog
}

// All returns the catalog in order. The slice is a copy.
func All() []Level {
	return append([]Level(nil), load()...)
}

func Count() int { return len(load()) }

func Get(id int) (Level, bool) {
	ls := load()
	if id < 0 || id >= len(ls) {
		return Level{}, false
	}
	return ls[id], true
}

// Lookup is Get for user input: it reports an unknown id as an error.
func Lookup(id int) (Level, error) {
	l, ok := Get(id)
	if !ok {
		return Level{}, fmt.Errorf("%w: %d (have 0-%d)", ErrUnknown, id, Count()-1)
	}
	return l, nil
}

// MustGet panics on an id outside the catalog.
func MustGet(id int) Level {
	l, ok := Get(id)
	if !ok {
		panic(fmt.Sprintf("level: unknown id %d", id))
	}
	return l
}

// Next and Prev step through the catalog, wrapping at the ends.
func Next(id int) int { return (id + 1) % Count() }
func Prev(id int) int { return (id - 1 + Count()) % Count() }
