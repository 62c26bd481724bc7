package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EntryResolver = (*Resolver)(nil)

// entryExt is the extension of files collected from entry directories.
const entryExt = ".js"

// Resolver implements the EntryResolver interface using filepath.Glob and the Walker.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveEntries resolves the given entry patterns to a list of concrete file paths.
// A pattern matching a directory contributes every .js file below it.
func (r *Resolver) ResolveEntries(patterns []string, root string, ignores []string) ([]string, error) {
	uniquePaths := make(map[string]bool)

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		if len(matches) == 0 {
			return nil, zerr.With(zerr.New("entry not found"), "path", path)
		}

		for _, match := range matches {
			if err := r.collect(match, ignores, uniquePaths); err != nil {
				return nil, err
			}
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}

func (r *Resolver) collect(match string, ignores []string, into map[string]bool) error {
	abs, err := filepath.Abs(match)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve absolute path"), "path", match)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat entry"), "path", abs)
	}

	if !info.IsDir() {
		if !Ignored(filepath.Base(abs), ignores) {
			into[abs] = true
		}
		return nil
	}

	for file := range r.walker.WalkFiles(abs, ignores) {
		if filepath.Ext(file) == entryExt {
			into[file] = true
		}
	}
	return nil
}
