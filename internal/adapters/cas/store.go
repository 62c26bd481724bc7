// Package cas implements build report storage.
package cas

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore using a flat JSON file keyed by bundle name.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.BuildInfo
}

// NewStore creates a new BuildInfoStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.BuildInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open adapts NewStore to ports.BuildInfoStoreFactory.
func Open(path string) (ports.BuildInfoStore, error) {
	return NewStore(path)
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read build info store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal build info store"), "path", s.path)
	}

	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build info store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build info store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write build info store"), "path", s.path)
	}

	return nil
}

// Get retrieves the last build report for a bundle.
func (s *Store) Get(bundle string) (*domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[bundle]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the build report.
func (s *Store) Put(info domain.BuildInfo) error {
	if info.Bundle == "" {
		return zerr.New("build info has no bundle name")
	}

	// Update cache first
	s.mu.Lock()
	s.cache[info.Bundle] = info
	s.mu.Unlock()

	// Then save to disk
	return s.save()
}

// All returns every stored report sorted by bundle name.
func (s *Store) All() ([]domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := slices.Collect(maps.Values(s.cache))
	slices.SortFunc(infos, func(a, b domain.BuildInfo) int {
		return cmp.Compare(a.Bundle, b.Bundle)
	})
	return infos, nil
}
