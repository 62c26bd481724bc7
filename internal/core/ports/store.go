package ports

import "go.trai.ch/incr/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build reports.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the last build report for a bundle.
	// Returns nil, nil if not found.
	Get(bundle string) (*domain.BuildInfo, error)

	// Put stores the build report.
	Put(info domain.BuildInfo) error

	// All returns every stored report sorted by bundle name.
	All() ([]domain.BuildInfo, error)
}

// BuildInfoStoreFactory opens the build report store persisted at path.
type BuildInfoStoreFactory func(path string) (BuildInfoStore, error)
