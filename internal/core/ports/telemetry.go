package ports

import (
	"context"
	"io"

	"go.trai.ch/incr/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records units of work (vertices) for progress reporting.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes the recording.
	Close() error
}

// Vertex is one recorded unit of work, typically one bundle build.
type Vertex interface {
	Stdout() io.Writer
	Stderr() io.Writer
	// Log records a message on the vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished (successfully or with an error).
	Complete(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// Group places the vertex under a named group.
	Group string
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithGroup places the vertex under group.
func WithGroup(group string) VertexOption {
	return func(c *VertexConfig) {
		c.Group = group
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
