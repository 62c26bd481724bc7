// Package incremental implements the incremental dependency cache: a store of
// content fingerprints, validated lazily and at most once per build session,
// exposed through the resolver's own lookup table.
package incremental

import (
	"fmt"
	"sync/atomic"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

// Context is the shared cache handle. Every plugin constructed from the same
// Context reads and writes the same fingerprint store and session tracker.
type Context struct {
	fs      ports.FileSystem
	logger  ports.Logger
	hasher  ports.Hasher
	store   *FingerprintStore
	tracker *SessionTracker

	sessions    atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
	validations atomic.Int64
}

// Option configures a Context.
type Option func(*Context)

// WithHasher adds content digests to debug logs.
func WithHasher(h ports.Hasher) Option {
	return func(c *Context) {
		c.hasher = h
	}
}

// NewContext creates a cache context with empty backing stores.
func NewContext(fsys ports.FileSystem, logger ports.Logger, opts ...Option) *Context {
	c := &Context{
		fs:      fsys,
		logger:  logger,
		store:   NewFingerprintStore(),
		tracker: NewSessionTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the fingerprint store.
func (c *Context) Store() *FingerprintStore {
	return c.store
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Sessions    int64
	Hits        int64
	Misses      int64
	Validations int64
	Entries     int
}

// Stats returns the current counters. Counters are cumulative across sessions.
func (c *Context) Stats() Stats {
	return Stats{
		Sessions:    c.sessions.Load(),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Validations: c.validations.Load(),
		Entries:     c.store.Len(),
	}
}

// Sub returns the counter deltas between s and an earlier snapshot.
func (s Stats) Sub(earlier Stats) Stats {
	return Stats{
		Sessions:    s.Sessions - earlier.Sessions,
		Hits:        s.Hits - earlier.Hits,
		Misses:      s.Misses - earlier.Misses,
		Validations: s.Validations - earlier.Validations,
		Entries:     s.Entries,
	}
}

// Resolve returns the cached record for file if its content is unchanged
// since capture. The file is re-read at most once per session; the verdict,
// hit or miss, is memoized until the next session.
func (c *Context) Resolve(file string) (domain.Record, bool) {
	entry, ok := c.store.Get(file)
	if !ok {
		return domain.Record{}, false
	}

	if c.tracker.IsValidated(file) {
		if entry.Stale() {
			c.misses.Add(1)
			return domain.Record{}, false
		}
		c.hits.Add(1)
		return entry.Output.Clone(), true
	}

	c.validate(file, entry)
	return c.Resolve(file)
}

// validate compares the current content of file with the captured input.
// A missing or unreadable file is a mismatch.
func (c *Context) validate(file string, entry *domain.Fingerprint) {
	match := false
	if !entry.Stale() {
		c.validations.Add(1)
		if c.fs.Exists(file) {
			current, err := c.fs.ReadFile(file)
			match = err == nil && current == entry.Input
		}
	}

	c.tracker.MarkValidated(file)

	if !match {
		c.store.Invalidate(file)
		c.logger.Debug(fmt.Sprintf("cache: invalidated %s", file))
		return
	}
	c.logger.Debug(fmt.Sprintf("cache: validated %s", file))
}

// capture records content and output for file and schedules it for
// validation on the next read.
func (c *Context) capture(file, content string, output domain.Record) {
	c.store.Capture(file, content, output)
	c.tracker.Track(file)

	if c.hasher != nil {
		c.logger.Debug(fmt.Sprintf("cache: captured %s (%s)", file, c.hasher.Digest(content)))
		return
	}
	c.logger.Debug(fmt.Sprintf("cache: captured %s", file))
}

// ensureAccessor installs the read hook for file on deps, once per table.
// The getter only holds the Context and the filename, so a hook installed in
// an earlier session observes the current backing state.
func (c *Context) ensureAccessor(deps ports.DepsCache, file string) {
	if deps.Has(file) {
		return
	}
	deps.Define(file, c.getter(file))
}

func (c *Context) getter(file string) ports.Getter {
	return func() (domain.Record, bool) {
		return c.Resolve(file)
	}
}
