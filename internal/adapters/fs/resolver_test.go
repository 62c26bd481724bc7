package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/adapters/fs"
)

func newResolver() *fs.Resolver {
	return fs.NewResolver(fs.NewWalker())
}

func TestResolver_ResolveEntries_Glob(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"a.js", "b.js", "c.log"} {
		writeFile(t, filepath.Join(tmpDir, f), "content")
	}

	resolved, err := newResolver().ResolveEntries([]string{"*.js"}, tmpDir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.js"),
		filepath.Join(tmpDir, "b.js"),
	}, resolved)
}

func TestResolver_ResolveEntries_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "pages", "home.js"), "")
	writeFile(t, filepath.Join(tmpDir, "pages", "about", "index.js"), "")
	writeFile(t, filepath.Join(tmpDir, "pages", "style.css"), "")
	writeFile(t, filepath.Join(tmpDir, "pages", "home.test.js"), "")

	resolved, err := newResolver().ResolveEntries([]string{"pages"}, tmpDir, []string{"*.test.js"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "pages", "about", "index.js"),
		filepath.Join(tmpDir, "pages", "home.js"),
	}, resolved)
}

func TestResolver_ResolveEntries_IgnoredFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.js"), "")
	writeFile(t, filepath.Join(tmpDir, "a.test.js"), "")

	resolved, err := newResolver().ResolveEntries([]string{"*.js"}, tmpDir, []string{"*.test.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "a.js")}, resolved)
}

func TestResolver_ResolveEntries_GlobError(t *testing.T) {
	_, err := newResolver().ResolveEntries([]string{"["}, t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to glob path")
}

func TestResolver_ResolveEntries_NoMatches(t *testing.T) {
	_, err := newResolver().ResolveEntries([]string{"*.nonexistent"}, t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry not found")
}

func TestResolver_ResolveEntries_Deduplication(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "main.js"), "")

	resolved, err := newResolver().ResolveEntries([]string{"main.js", "*.js", "main.js", "."}, tmpDir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "main.js")}, resolved)
}

func TestResolver_ResolveEntries_AbsolutePattern(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "main.js")
	writeFile(t, path, "")

	resolved, err := newResolver().ResolveEntries([]string{path}, "/elsewhere", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, resolved)
}
