package bundler

import (
	"context"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Pipeline = (*Pipeline)(nil)
	_ ports.Stage    = (*Stage)(nil)
)

// Stage is one labeled step of the pipeline.
type Stage struct {
	label      string
	transforms []ports.Transform
	cache      ports.DepsCache
}

// Push appends a transform to the stage.
func (s *Stage) Push(t ports.Transform) {
	s.transforms = append(s.transforms, t)
}

// Cache returns the resolver cache for the deps stage and nil for every other stage.
func (s *Stage) Cache() ports.DepsCache {
	return s.cache
}

// Pipeline is an ordered list of labeled stages.
type Pipeline struct {
	stages []*Stage
}

func newPipeline(cache *Cache) *Pipeline {
	return &Pipeline{
		stages: []*Stage{
			{label: ports.StageDeps, cache: cache},
			{label: ports.StageLabel},
			{label: ports.StageEmit},
		},
	}
}

// Get returns the stage with the given label.
func (p *Pipeline) Get(label string) (ports.Stage, bool) {
	for _, s := range p.stages {
		if s.label == label {
			return s, true
		}
	}
	return nil, false
}

// Labels returns the stage labels in execution order.
func (p *Pipeline) Labels() []string {
	labels := make([]string, len(p.stages))
	for i, s := range p.stages {
		labels[i] = s.label
	}
	return labels
}

// run passes row through every transform of every stage, in order.
func (p *Pipeline) run(ctx context.Context, row domain.Row) (domain.Row, error) {
	for _, s := range p.stages {
		for _, t := range s.transforms {
			var err error
			row, err = t.Transform(ctx, row)
			if err != nil {
				return domain.Row{}, zerr.With(zerr.Wrap(err, "pipeline transform failed"), "stage", s.label)
			}
		}
	}
	return row, nil
}
