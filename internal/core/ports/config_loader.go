package ports

import "go.trai.ch/prunelock/internal/core/domain"

// ConfigLoader defines the interface for loading the prune configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration file starting at cwd and walking up.
	// When no file exists it returns domain.DefaultConfig with Root set to cwd.
	Load(cwd string) (domain.Config, error)
}
