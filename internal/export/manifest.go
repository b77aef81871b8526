package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/phasetime/internal/params"
)

// Manifest describes one exported recording or frame.
type Manifest struct {
	ID       string        `json:"id"`
	Level    int           `json:"level"`
	Kind     string        `json:"kind"`
	Seed     int64         `json:"seed"`
	Params   params.Params `json:"params"`
	Frames   int           `json:"frames"`
	Duration float64       `json:"duration"`
	Created  time.Time     `json:"created"`
	Files    []string      `json:"files"`
}

func NewManifest(levelID int, kind string, seed int64, p params.Params) *Manifest {
	return &Manifest{
		ID:      uuid.NewString(),
		Level:   levelID,
		Kind:    kind,
		Seed:    seed,
		Params:  p,
		Created: time.Now().UTC(),
	}
}

// Name builds "<prefix>-<short id>.<ext>" for output files of this export.
func (m *Manifest) Name(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, m.ID[:8], ext)
}

func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func (m *Manifest) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
