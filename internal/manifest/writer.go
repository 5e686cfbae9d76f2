package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New() *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		BasePath:    "./",
		Fixtures:    make(map[string]Fixture),
	}
}

// ComputeStats recalculates aggregate statistics from fixtures.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalFixtures = len(m.Fixtures)
	for _, f := range m.Fixtures {
		s.TotalBytes += f.Size
		s.TotalPixels += int64(f.Width) * int64(f.Height)
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to an indented JSON file.
// encoding/json sorts map keys, so output order is stable.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest. Unknown fields are ignored.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
