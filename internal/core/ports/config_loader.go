package ports

import "go.trai.ch/spawn/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the project described by target: a spawn.yaml path, or a directory
	// searched upwards for one.
	Load(target string) (*domain.Project, error)
}
