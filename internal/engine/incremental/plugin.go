package incremental

import (
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Plugin attaches a Context to a bundler. Several plugins may share one Context.
type Plugin struct {
	cache *Context
}

// NewPlugin creates a plugin backed by c.
func NewPlugin(c *Context) *Plugin {
	return &Plugin{cache: c}
}

// Context returns the shared cache handle.
func (p *Plugin) Context() *Context {
	return p.cache
}

// Apply installs the cache stage on b now and again after every reset.
// It fails if b does not look like a bundler.
func (p *Plugin) Apply(b ports.Bundler) error {
	if b == nil || b.Pipeline() == nil {
		return domain.ErrInvalidBundler
	}

	if err := p.setupPipeline(b); err != nil {
		return err
	}

	b.OnReset(func() error {
		return p.setupPipeline(b)
	})
	return nil
}

func (p *Plugin) setupPipeline(b ports.Bundler) error {
	pipeline := b.Pipeline()
	if pipeline == nil {
		return domain.ErrInvalidBundler
	}

	stage, ok := pipeline.Get(ports.StageDeps)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrStageNotFound, "failed to set up incremental cache"), "stage", ports.StageDeps)
	}

	deps := stage.Cache()
	if deps == nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidBundler, "deps stage has no cache"), "stage", ports.StageDeps)
	}

	stage.Push(p.cache.NewSession(deps))
	return nil
}
