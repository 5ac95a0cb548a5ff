package install

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MarkerFileName is written next to the executable after a validated install.
const MarkerFileName = ".bitfighters-install.json"

// Marker records which release is installed.
type Marker struct {
	Version     string    `json:"version"`
	InstalledAt time.Time `json:"installed_at"`
	Source      string    `json:"source,omitempty"`
}

// ReadMarker reads the marker in dir.
// Returns nil, nil if the marker file does not exist.
func ReadMarker(dir string) (*Marker, error) {
	path := filepath.Join(dir, MarkerFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading install marker: %w", err)
	}

	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing install marker: %w", err)
	}
	return &m, nil
}

// WriteMarker writes m into dir.
func WriteMarker(dir string, m *Marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling install marker: %w", err)
	}

	path := filepath.Join(dir, MarkerFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing install marker: %w", err)
	}
	return nil
}
