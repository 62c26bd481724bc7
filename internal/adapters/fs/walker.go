// Package fs provides file system adapters for reading, walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root, skipping version control and
// dependency directories and anything whose name matches an ignore pattern.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.shouldSkip(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip reports whether the entry is excluded from the walk.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) bool {
	name := d.Name()

	if d.IsDir() && skippedDirs[name] {
		return true
	}

	return Ignored(name, ignores)
}

// Ignored reports whether name matches one of the ignore patterns.
func Ignored(name string, ignores []string) bool {
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
