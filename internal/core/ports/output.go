package ports

import "go.trai.ch/incr/internal/core/domain"

// OutputWriter persists the rows emitted for a bundle.
//
//go:generate go run go.uber.org/mock/mockgen -source=output.go -destination=mocks/mock_output.go -package=mocks
type OutputWriter interface {
	// WriteRows writes rows to path, creating parent directories as needed.
	WriteRows(path string, rows []domain.Row) error
}
