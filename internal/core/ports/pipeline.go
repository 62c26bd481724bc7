package ports

import (
	"context"

	"go.trai.ch/incr/internal/core/domain"
)

// Well-known pipeline stage labels.
const (
	// StageDeps is the dependency resolution stage. Its cache is the lookup
	// table the resolver consults before reading a file.
	StageDeps = "deps"
	// StageLabel rewrites dependency labels.
	StageLabel = "label"
	// StageEmit is the last stage before rows leave the pipeline.
	StageEmit = "emit"
)

// Bundler is the host build pipeline plugins attach to.
type Bundler interface {
	// OnReset registers fn to run at the start of every build, after the
	// pipeline has been rebuilt.
	OnReset(fn func() error)
	// Pipeline returns the current pipeline. It is replaced on every reset.
	Pipeline() Pipeline
}

// Pipeline is a named, ordered sequence of stages.
type Pipeline interface {
	// Get returns the stage with the given label.
	Get(label string) (Stage, bool)
	// Labels returns the stage labels in execution order.
	Labels() []string
}

// Stage is one labeled step of the pipeline.
type Stage interface {
	// Push appends a transform to the stage.
	Push(t Transform)
	// Cache returns the lookup table owned by the stage's resolver, or nil if
	// the stage has none.
	Cache() DepsCache
}

// Transform processes one row at a time.
type Transform interface {
	Transform(ctx context.Context, row domain.Row) (domain.Row, error)
}

// TransformFunc adapts a function to Transform.
type TransformFunc func(ctx context.Context, row domain.Row) (domain.Row, error)

// Transform calls f.
func (f TransformFunc) Transform(ctx context.Context, row domain.Row) (domain.Row, error) {
	return f(ctx, row)
}

// Getter computes a cache value on read. A false result is a cache miss.
type Getter func() (domain.Record, bool)

// DepsCache is the resolver's filename to record lookup table.
type DepsCache interface {
	// Get returns the record for file, running its getter if one is defined.
	Get(file string) (domain.Record, bool)
	// Has reports whether a getter is defined for file.
	Has(file string) bool
	// Define installs getter for file. A key can be defined once; later calls
	// are no-ops and return false.
	Define(file string, getter Getter) bool
}
