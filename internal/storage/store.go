// Package storage keeps analysis traces on disk, one directory per run with
// a metadata.json and a series.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/phasetime/internal/analysis"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/scene"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

type RunMetadata struct {
	ID        string        `json:"id"`
	Kind      string        `json:"kind"`
	Level     int           `json:"level"`
	Timestamp time.Time     `json:"timestamp"`
	Seed      int64         `json:"seed"`
	Dt        float64       `json:"dt"`
	Duration  float64       `json:"duration"`
	Params    params.Params `json:"params"`
	Mean      float64       `json:"mean"`
	Std       float64       `json:"std"`
	PeakHz    float64       `json:"peak_hz"`
}

// Save writes series under a new run id and returns it. level is -1 for a
// trace of a bare scene kind.
func (s *Store) Save(series *analysis.Series, level int, seed int64, p params.Params) (string, error) {
	if series == nil || series.Len() == 0 {
		return "", analysis.ErrDuration
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%s", series.Kind, now.Format("20060102-150405"), uuid.NewString()[:4])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      string(series.Kind),
		Level:     level,
		Timestamp: now,
		Seed:      seed,
		Dt:        series.Dt,
		Duration:  float64(series.Len()) * series.Dt,
		Params:    p,
		Mean:      series.Mean(),
		Std:       series.Std(),
		PeakHz:    analysis.Dominant(series).Freq,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "luminance"}); err != nil {
		f.Close()
		return "", err
	}
	for i := range series.Values {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Values[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", err
	}
	return runID, f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first. A missing base directory
// is an empty store.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads a run's samples back. Malformed rows are skipped.
func (s *Store) LoadSeries(runID string) (*analysis.Series, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := &analysis.Series{Kind: scene.Kind(meta.Kind), Dt: meta.Dt}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		out.Times = append(out.Times, t)
		out.Values = append(out.Values, v)
	}
	return out, nil
}
