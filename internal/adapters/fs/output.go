package fs

import (
	"cmp"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*OutputWriter)(nil)

// OutputWriter writes bundle rows as an indented JSON array sorted by row ID.
type OutputWriter struct{}

// NewOutputWriter creates a new OutputWriter.
func NewOutputWriter() *OutputWriter {
	return &OutputWriter{}
}

// WriteRows writes rows to path. The file is replaced atomically.
func (o *OutputWriter) WriteRows(path string, rows []domain.Row) error {
	sorted := slices.Clone(rows)
	if sorted == nil {
		sorted = []domain.Row{}
	}
	slices.SortFunc(sorted, func(a, b domain.Row) int {
		return cmp.Compare(a.ID, b.ID)
	})

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal bundle output")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".incr-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary output"), "path", dir)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best effort cleanup, the file is renamed on success

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write bundle output"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write bundle output"), "path", path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace bundle output"), "path", path)
	}
	return nil
}
