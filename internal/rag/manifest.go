package rag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ManifestFile is written last by a build, so its presence marks a complete index.
	ManifestFile = "index.json"
	// VectorsDir holds the LevelDB database of the local backend.
	VectorsDir = "vectors"
)

// Index backends
const (
	BackendLocal  = "local"
	BackendQdrant = "qdrant"
)

var (
	// ErrIndexNotFound is returned when the index directory or its manifest is absent.
	ErrIndexNotFound = errors.New("index not found")
	// ErrInvalidManifest is returned when the manifest cannot be used.
	ErrInvalidManifest = errors.New("invalid index manifest")
)

// Manifest describes a built index
type Manifest struct {
	Backend    string    `json:"backend"`
	EmbedModel string    `json:"embed_model"`
	LLMModel   string    `json:"llm_model"`
	Dimension  uint64    `json:"dimension"`
	Documents  int       `json:"documents"`
	Chunks     int       `json:"chunks"`
	Collection string    `json:"collection,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields a query needs
func (m *Manifest) Validate() error {
	switch m.Backend {
	case BackendLocal:
	case BackendQdrant:
		if m.Collection == "" {
			return fmt.Errorf("%w: qdrant backend without collection", ErrInvalidManifest)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidManifest, m.Backend)
	}
	if m.EmbedModel == "" {
		return fmt.Errorf("%w: missing embed_model", ErrInvalidManifest)
	}
	if m.Dimension == 0 {
		return fmt.Errorf("%w: missing dimension", ErrInvalidManifest)
	}
	return nil
}

// ReadManifest loads and validates dir/index.json
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteManifest stores m as dir/index.json, replacing any previous manifest atomically.
func WriteManifest(dir string, m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmp := filepath.Join(dir, ManifestFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, ManifestFile)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// RemoveManifest deletes dir/index.json so a half-rebuilt index is never loaded.
func RemoveManifest(dir string) error {
	err := os.Remove(filepath.Join(dir, ManifestFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove manifest: %w", err)
	}
	return nil
}
