package ports

import "go.trai.ch/morph/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline definition.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the pipeline definition from the given working directory.
	Load(cwd string) (*domain.Pipeline, error)

	// LoadFile reads the pipeline definition at path.
	LoadFile(path string) (*domain.Pipeline, error)
}
