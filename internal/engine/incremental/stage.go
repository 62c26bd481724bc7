package incremental

import (
	"context"
	"fmt"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

var _ ports.Transform = (*Stage)(nil)

// Stage is the deps stage transform for one build session. It captures every
// row it sees into the fingerprint store and passes the row on unchanged.
type Stage struct {
	cache   *Context
	deps    ports.DepsCache
	session int64
}

// NewSession starts a build session against the resolver's lookup table and
// returns the transform to push on the deps stage. Validations from earlier
// sessions are forgotten.
func (c *Context) NewSession(deps ports.DepsCache) *Stage {
	c.tracker.Reset()
	return &Stage{
		cache:   c,
		deps:    deps,
		session: c.sessions.Add(1),
	}
}

// Session returns the 1-based session number of the stage.
func (s *Stage) Session() int64 {
	return s.session
}

// Transform captures row and ensures the lookup table can serve it.
// A file that cannot be read is not captured; the accessor is installed anyway
// and reports a miss.
func (s *Stage) Transform(_ context.Context, row domain.Row) (domain.Row, error) {
	file := row.File

	content, err := s.cache.fs.ReadFile(file)
	if err != nil {
		s.cache.logger.Debug(fmt.Sprintf("cache: skipping capture of %s: %v", file, err))
	} else {
		s.cache.capture(file, content, row.Record())
	}

	s.cache.ensureAccessor(s.deps, file)

	return row, nil
}
