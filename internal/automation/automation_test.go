package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/phasetime/internal/logger"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
	"github.com/san-kum/phasetime/internal/storage"
)

const tour = `
name: tour
seed: 7
steps:
  - level: 8
    duration: 2
    dt: 0.1
    params:
      omega: 0.5
  - scene: wave-1d
    duration: 2
    dt: 0.1
    save: true
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(tour))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sc.Name != "tour" || sc.Seed != 7 || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[0].Level == nil || *sc.Steps[0].Level != 8 {
		t.Error("first step should target level 8")
	}

	if _, err := ParseScenario([]byte("name: empty\n")); !errors.Is(err, ErrStep) {
		t.Errorf("empty scenario err = %v, want ErrStep", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(tour))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())
	results, err := RunScenario(context.Background(), sc, params.Default(), st, logger.Discard())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Kind != scene.Phasor || first.Level != 8 {
		t.Errorf("step 1 = %s/%d, want phasor/8", first.Kind, first.Level)
	}
	if first.Params.Omega != 0.5 || first.Params.Speed != params.Default().Speed {
		t.Errorf("step 1 params = %+v", first.Params)
	}
	if first.RunID != "" {
		t.Error("unsaved step should have no run id")
	}

	second := results[1]
	if second.Level != -1 || second.RunID == "" {
		t.Fatalf("step 2 = level %d run %q", second.Level, second.RunID)
	}
	if _, err := st.LoadSeries(second.RunID); err != nil {
		t.Errorf("saved run unreadable: %v", err)
	}
}

func TestRunScenarioRejectsBadSteps(t *testing.T) {
	cases := map[string]string{
		"unknown scene":   "steps:\n  - scene: nope\n",
		"missing target":  "steps:\n  - duration: 1\n",
		"unknown control": "steps:\n  - level: 0\n    params: {gain: 1}\n",
		"bad level":       "steps:\n  - level: 99\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			sc, err := ParseScenario([]byte(doc))
			if err != nil {
				t.Fatal(err)
			}
			_, err = RunScenario(context.Background(), sc, params.Default(), nil, logger.Discard())
			if !errors.Is(err, ErrStep) {
				t.Errorf("err = %v, want ErrStep", err)
			}
		})
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	sc, err := ParseScenario([]byte(tour))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := RunScenario(ctx, sc, params.Default(), nil, logger.Discard())
	if !errors.Is(err, context.Canceled) || len(results) != 0 {
		t.Errorf("got %d results, err %v", len(results), err)
	}
}
