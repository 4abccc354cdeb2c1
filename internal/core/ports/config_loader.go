package ports

import "go.trai.ch/ppac/internal/core/domain"

// RepositoryLoader defines the interface for reading the repository configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type RepositoryLoader interface {
	// Load reads the repository configuration at path.
	// A missing file yields an empty list and domain.ErrConfigMissing.
	Load(path string) ([]domain.Repository, error)
}

// SettingsLoader defines the interface for resolving the settings of a session.
type SettingsLoader interface {
	// Load reads the optional settings file under home and fills in defaults.
	Load(home string) (domain.Settings, error)
}
