package incremental

import (
	"iter"
	"slices"
	"sync"

	"go.trai.ch/incr/internal/core/domain"
)

// FingerprintStore holds, per filename, the last captured content and the
// record derived from it. It outlives build sessions and is shared by every
// plugin attached to the same Context.
type FingerprintStore struct {
	mu      sync.RWMutex
	entries map[domain.InternedString]*domain.Fingerprint
}

// NewFingerprintStore creates an empty store.
func NewFingerprintStore() *FingerprintStore {
	return &FingerprintStore{
		entries: make(map[domain.InternedString]*domain.Fingerprint),
	}
}

// Capture overwrites the entry for file with a fresh {content, output} pair.
func (s *FingerprintStore) Capture(file, content string, output domain.Record) {
	fp := domain.NewFingerprint(content, output)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[domain.NewInternedString(file)] = fp
}

// Get returns the entry for file. The entry may be the stale sentinel.
func (s *FingerprintStore) Get(file string) (*domain.Fingerprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fp, ok := s.entries[domain.NewInternedString(file)]
	return fp, ok
}

// Invalidate replaces the entry for file with the stale sentinel, so a failed
// validation is remembered without being repeated.
func (s *FingerprintStore) Invalidate(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[domain.NewInternedString(file)] = domain.StaleFingerprint()
}

// Len returns the number of known files, stale ones included.
func (s *FingerprintStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Files yields the known filenames in sorted order.
func (s *FingerprintStore) Files() iter.Seq[string] {
	s.mu.RLock()
	files := make([]string, 0, len(s.entries))
	for f := range s.entries {
		files = append(files, f.String())
	}
	s.mu.RUnlock()
	slices.Sort(files)

	return slices.Values(files)
}
