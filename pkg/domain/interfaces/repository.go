package interfaces

import (
	"context"

	"github.com/m-mizutani/buffet/pkg/domain/model"
)

// SettingsStore persists per-repository integration settings
type SettingsStore interface {
	// Get returns the settings for name, or nil without error if none are registered
	Get(ctx context.Context, name string) (*model.RepositorySettings, error)

	// Put creates or overwrites the settings keyed by settings.Name
	Put(ctx context.Context, settings *model.RepositorySettings) error
}
