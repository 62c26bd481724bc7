package ports

import "go.trai.ch/incr/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. Relative paths in the file are
	// resolved against the directory containing it.
	Load(path string) (*domain.Config, error)
}
