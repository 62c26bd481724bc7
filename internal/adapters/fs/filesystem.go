package fs

import (
	"os"

	"go.trai.ch/incr/internal/core/ports"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem reads files from the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// ReadFile returns the content of the file at path.
func (f *FileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether a regular file exists at path.
func (f *FileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
