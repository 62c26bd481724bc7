// Package labels rewrites dependency aliases to the paths they resolve to,
// so emitted rows do not leak the original require strings.
package labels

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Plugin pushes the label rewrite on a bundler's label stage.
type Plugin struct{}

// NewPlugin creates a label plugin.
func NewPlugin() *Plugin {
	return &Plugin{}
}

// Apply installs the rewrite now and after every reset.
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
	stage, ok := b.Pipeline().Get(ports.StageLabel)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrStageNotFound, "failed to set up label rewrite"), "stage", ports.StageLabel)
	}
	stage.Push(ports.TransformFunc(func(_ context.Context, row domain.Row) (domain.Row, error) {
		return Anonymize(row), nil
	}))
	return nil
}

// Anonymize renames every alias in row.Deps to its resolved path and rewrites
// quoted occurrences of the alias in row.Source accordingly. Unresolved
// aliases are kept as they are. The input deps map is not modified.
func Anonymize(row domain.Row) domain.Row {
	if len(row.Deps) == 0 {
		return row
	}

	deps := make(map[string]string, len(row.Deps))
	source := row.Source

	for _, alias := range slices.Sorted(maps.Keys(row.Deps)) {
		resolved := row.Deps[alias]
		if resolved == "" || resolved == alias {
			deps[alias] = resolved
			continue
		}
		source = replaceQuoted(source, alias, resolved)
		deps[resolved] = resolved
	}

	row.Deps = deps
	row.Source = source
	return row
}

func replaceQuoted(source, alias, resolved string) string {
	quoted := strconv.Quote(resolved)
	return strings.NewReplacer(
		`"`+alias+`"`, quoted,
		`'`+alias+`'`, quoted,
		"`"+alias+"`", quoted,
	).Replace(source)
}
