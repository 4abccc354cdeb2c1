package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/internal/core/ports"
)

const (
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.settings_loader"
	// RepositoriesNodeID is the unique identifier for the repository loader Graft node.
	RepositoriesNodeID graft.ID = "adapter.repository_loader"
)

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.RepositoryLoader]{
		ID:        RepositoriesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepositoryLoader, error) {
			return NewRepositoryLoader(), nil
		},
	})
}
