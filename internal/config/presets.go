package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/phasetime/internal/params"
)

// Presets are named parameter sets for the three controls.
var Presets = map[string]params.Params{
	"default": params.Default(),
	"slow":    {Speed: 0.3, Omega: 0.2, Couple: 0.7},
	"fast":    {Speed: 2.5, Omega: 0.2, Couple: 0.7},
	"highE":   {Speed: 1.0, Omega: 1.5, Couple: 0.7},
	"lowE":    {Speed: 1.0, Omega: 0.05, Couple: 0.7},
	"weak":    {Speed: 1.0, Omega: 0.2, Couple: 0.1},
	"strong":  {Speed: 1.0, Omega: 0.2, Couple: 1.0},
	"frantic": {Speed: 3.0, Omega: 2.0, Couple: 1.0},
}

func GetPreset(name string) (params.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ApplyPreset replaces cfg's parameters with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPreset, name)
	}
	c.Params = p
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
