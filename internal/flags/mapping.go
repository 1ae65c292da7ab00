// Package flags keeps team-flag images cached under the static asset tree and
// maintains the persisted flag-id → team-name / local-path mapping.
package flags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Mapping is the persisted flag mapping. Both maps are keyed by the numeric
// flag identifier as a string.
type Mapping struct {
	IDToName map[string]string `json:"id_to_name"`
	IDToPath map[string]string `json:"id_to_path"`
}

// NewMapping returns an empty mapping with both maps allocated.
func NewMapping() Mapping {
	return Mapping{
		IDToName: make(map[string]string),
		IDToPath: make(map[string]string),
	}
}

// Clone returns a deep copy.
func (m Mapping) Clone() Mapping {
	out := NewMapping()
	for k, v := range m.IDToName {
		out.IDToName[k] = v
	}
	for k, v := range m.IDToPath {
		out.IDToPath[k] = v
	}
	return out
}

func (m *Mapping) ensure() {
	if m.IDToName == nil {
		m.IDToName = make(map[string]string)
	}
	if m.IDToPath == nil {
		m.IDToPath = make(map[string]string)
	}
}

// Store is the durable backing for a Mapping.
type Store interface {
	Load(ctx context.Context) (Mapping, error)
	Save(ctx context.Context, m Mapping) error
}

// --------------------------------------------------------------------------
// FileStore: JSON file, replaced atomically on every save
// --------------------------------------------------------------------------

// FileStore persists the mapping as a JSON object with id_to_name and
// id_to_path keys.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the mapping file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the mapping. A missing file yields an empty mapping.
func (s *FileStore) Load(_ context.Context) (Mapping, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewMapping(), nil
	}
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping: %w", err)
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("decode mapping %s: %w", s.path, err)
	}
	m.ensure()
	return m, nil
}

// Save writes the mapping to a temporary file and renames it into place, so
// a failed or interrupted write never leaves a partial mapping behind.
func (s *FileStore) Save(_ context.Context, m Mapping) error {
	m.ensure()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create mapping dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace mapping: %w", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// MemoryStore: process-local, for tests and dry runs
// --------------------------------------------------------------------------

// MemoryStore keeps the mapping in memory.
type MemoryStore struct {
	mu    sync.Mutex
	m     Mapping
	saves int
}

// NewMemoryStore creates a store seeded with m.
func NewMemoryStore(m Mapping) *MemoryStore {
	m.ensure()
	return &MemoryStore{m: m.Clone()}
}

func (s *MemoryStore) Load(_ context.Context) (Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, m Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = m.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
