// Package automation runs scripted batches of scene traces.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasetime/internal/analysis"
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
	"github.com/san-kum/phasetime/internal/storage"
)

var ErrStep = errors.New("automation: invalid step")

// Scenario defines a scripted trace sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Seed        int64          `yaml:"seed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep traces one level, or a bare scene kind when Scene is set.
// Unset controls keep the scenario defaults.
type ScenarioStep struct {
	Level    *int               `yaml:"level"`
	Scene    string             `yaml:"scene"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Params   map[string]float64 `yaml:"params"`
	Save     bool               `yaml:"save"`
}

// StepResult is the outcome of one step. RunID is set for saved steps.
type StepResult struct {
	Step   int
	Kind   scene.Kind
	Level  int
	Params params.Params
	Series *analysis.Series
	Peak   analysis.Peak
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario has no steps", ErrStep)
	}
	return &sc, nil
}

// resolve returns the scene kind and level id for a step; id is -1 for a
// bare kind.
func (s ScenarioStep) resolve() (scene.Kind, int, error) {
	if s.Scene != "" {
		k, err := scene.Default.Parse(s.Scene)
		if err != nil {
			return "", -1, fmt.Errorf("%w: %v", ErrStep, err)
		}
		return k, -1, nil
	}
	if s.Level == nil {
		return "", -1, fmt.Errorf("%w: needs a level or a scene", ErrStep)
	}
	lv, err := level.Lookup(*s.Level)
	if err != nil {
		return "", -1, fmt.Errorf("%w: %v", ErrStep, err)
	}
	return lv.Scene, lv.ID, nil
}

func (s ScenarioStep) params(base params.Params) (params.Params, error) {
	p := base
	for name, v := range s.Params {
		if _, ok := params.RangeFor(name); !ok {
			return p, fmt.Errorf("%w: unknown control %q", ErrStep, name)
		}
		p = params.Set(name, v).Apply(p)
	}
	return params.Clamp(p), nil
}

// RunScenario executes all steps in order. Saved steps go to st, which may
// be nil when no step saves. Results gathered before a failure are
// returned with the error.
func RunScenario(ctx context.Context, sc *Scenario, base params.Params, st *storage.Store, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = slog.Default()
	}
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		kind, id, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		p, err := step.params(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		log.Info("running step", "step", i+1, "of", len(sc.Steps), "kind", kind, "speed", p.Speed, "omega", p.Omega, "couple", p.Couple)
		series, err := analysis.Trace(kind, analysis.Options{
			Duration: step.Duration,
			Dt:       step.Dt,
			Seed:     sc.Seed,
			Params:   p,
		})
		if err != nil {
			return results, fmt.Errorf("step %d trace: %w", i+1, err)
		}

		res := StepResult{
			Step:   i + 1,
			Kind:   kind,
			Level:  id,
			Params: p,
			Series: series,
			Peak:   analysis.Dominant(series),
		}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: %w: save requested without a store", i+1, ErrStep)
			}
			if err := st.Init(); err != nil {
				return results, err
			}
			res.RunID, err = st.Save(series, id, sc.Seed, p)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}
