package incremental

import (
	"sync"

	"go.trai.ch/incr/internal/core/domain"
)

// SessionTracker remembers which files were already validated in the current
// session. Keys are never removed: Reset overwrites every flag in place.
type SessionTracker struct {
	mu        sync.RWMutex
	validated map[domain.InternedString]bool
}

// NewSessionTracker creates an empty tracker.
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{
		validated: make(map[domain.InternedString]bool),
	}
}

// Reset clears the validated flag of every known file.
func (t *SessionTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.validated {
		t.validated[k] = false
	}
}

// Track registers file as not yet validated.
func (t *SessionTracker) Track(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.validated[domain.NewInternedString(file)] = false
}

// IsValidated reports whether file was validated in the current session.
func (t *SessionTracker) IsValidated(file string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.validated[domain.NewInternedString(file)]
}

// MarkValidated records that file has been validated in the current session.
func (t *SessionTracker) MarkValidated(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.validated[domain.NewInternedString(file)] = true
}

// Len returns the number of known files.
func (t *SessionTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.validated)
}
