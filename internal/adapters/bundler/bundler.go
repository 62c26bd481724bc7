// Package bundler implements a minimal module-dependency pipeline host. It walks
// require() calls from a set of entry files, consults a resolver cache before
// reading any file, and streams every discovered module through a labeled
// pipeline of transforms.
package bundler

import (
	"context"
	"errors"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

var requirePattern = regexp.MustCompile("(?:^|[^.\\w$])require\\s*\\(\\s*['\"`]([^'\"`]+)['\"`]\\s*\\)")

// Bundler is the reference host: a resolver cache, a pipeline and a set of entries.
type Bundler struct {
	fs        ports.FileSystem
	logger    ports.Logger
	entries   []string
	cache     *Cache
	pipeline  *Pipeline
	listeners []func() error
	bundled   bool
}

// New creates a bundler for the given entry files.
func New(fsys ports.FileSystem, logger ports.Logger, entries []string) *Bundler {
	cleaned := make([]string, len(entries))
	for i, e := range entries {
		cleaned[i] = filepath.Clean(e)
	}
	cache := NewCache()
	return &Bundler{
		fs:       fsys,
		logger:   logger,
		entries:  cleaned,
		cache:    cache,
		pipeline: newPipeline(cache),
	}
}

// OnReset registers a listener invoked after every pipeline rebuild.
func (b *Bundler) OnReset(fn func() error) {
	b.listeners = append(b.listeners, fn)
}

// Pipeline returns the current pipeline.
func (b *Bundler) Pipeline() ports.Pipeline {
	return b.pipeline
}

// Cache returns the resolver cache. It survives resets.
func (b *Bundler) Cache() *Cache {
	return b.cache
}

// Reset rebuilds the pipeline and notifies reset listeners.
func (b *Bundler) Reset() error {
	b.pipeline = newPipeline(b.cache)

	var errs []error
	for _, fn := range b.listeners {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return zerr.Wrap(err, "reset listener failed")
	}
	return nil
}

// Bundle walks the dependency graph from the entries and returns the rows
// emitted by the pipeline, in discovery order. Every call after the first
// rebuilds the pipeline first.
func (b *Bundler) Bundle(ctx context.Context) ([]domain.Row, error) {
	if len(b.entries) == 0 {
		return nil, domain.ErrNoEntries
	}
	if b.bundled {
		if err := b.Reset(); err != nil {
			return nil, err
		}
	}
	b.bundled = true

	queue := append([]string(nil), b.entries...)
	seen := make(map[string]bool, len(queue))
	entries := make(map[string]bool, len(queue))
	for _, e := range b.entries {
		seen[e] = true
		entries[e] = true
	}

	var rows []domain.Row
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := queue[0]
		queue = queue[1:]

		row, err := b.load(file)
		if err != nil {
			return nil, err
		}
		row.Entry = entries[file]

		for _, dep := range sortedValues(row.Deps) {
			if dep == "" || seen[dep] {
				continue
			}
			seen[dep] = true
			queue = append(queue, dep)
		}

		out, err := b.pipeline.run(ctx, row)
		if err != nil {
			return nil, zerr.With(err, "file", file)
		}
		rows = append(rows, out)
	}

	return rows, nil
}

// load produces the row for file, from the cache when possible.
func (b *Bundler) load(file string) (domain.Row, error) {
	if rec, ok := b.cache.Get(file); ok {
		b.logger.Debug("bundler: cached " + file)
		return domain.RowFromRecord(rec), nil
	}

	source, err := b.fs.ReadFile(file)
	if err != nil {
		return domain.Row{}, zerr.With(zerr.Wrap(domain.ErrModuleNotFound, err.Error()), "file", file)
	}

	deps, err := b.parse(file, source)
	if err != nil {
		return domain.Row{}, err
	}

	return domain.Row{
		ID:     file,
		File:   file,
		Source: source,
		Deps:   deps,
	}, nil
}

// parse scans source for require() calls and resolves each alias.
// Bare specifiers are external and left out of the deps map.
func (b *Bundler) parse(file, source string) (map[string]string, error) {
	deps := make(map[string]string)
	dir := filepath.Dir(file)

	for _, m := range requirePattern.FindAllStringSubmatch(source, -1) {
		alias := m[1]
		if _, ok := deps[alias]; ok {
			continue
		}
		if !isPathSpecifier(alias) {
			b.logger.Debug("bundler: external " + alias)
			continue
		}
		resolved, ok := b.resolve(dir, alias)
		if !ok {
			err := zerr.Wrap(domain.ErrModuleNotFound, "cannot resolve dependency")
			err = zerr.With(err, "alias", alias)
			return nil, zerr.With(err, "from", file)
		}
		deps[alias] = resolved
	}

	return deps, nil
}

// resolve tries the alias as written, then with a .js or .json suffix,
// then as a directory holding index.js.
func (b *Bundler) resolve(dir, alias string) (string, bool) {
	base := alias
	if !filepath.IsAbs(base) {
		base = filepath.Join(dir, alias)
	}

	candidates := []string{
		base,
		base + ".js",
		base + ".json",
		filepath.Join(base, "index.js"),
	}
	for _, c := range candidates {
		if b.fs.Exists(c) {
			return c, true
		}
	}
	return "", false
}

func isPathSpecifier(alias string) bool {
	return strings.HasPrefix(alias, "./") ||
		strings.HasPrefix(alias, "../") ||
		alias == "." || alias == ".." ||
		filepath.IsAbs(alias)
}

// sortedValues returns the values of deps ordered by key.
func sortedValues(deps map[string]string) []string {
	keys := slices.Sorted(maps.Keys(deps))
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = deps[k]
	}
	return values
}
