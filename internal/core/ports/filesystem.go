// Package ports defines the core interfaces for the application.
package ports

// FileSystem is the file access the cache and the bundler need.
// Failures surface as errors or false; callers decide whether they are fatal.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ReadFile returns the content of the file at path.
	ReadFile(path string) (string, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
}
