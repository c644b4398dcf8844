package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Store keeps repository settings in process memory. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	settings map[string]model.RepositorySettings
}

var _ interfaces.SettingsStore = &Store{}

// New creates an empty Store
func New() *Store {
	return &Store{
		settings: make(map[string]model.RepositorySettings),
	}
}

// Get returns a copy of the settings for name, or nil if not registered
func (s *Store) Get(_ context.Context, name string) (*model.RepositorySettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[name]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// Put overwrites the settings for settings.Name
func (s *Store) Put(_ context.Context, settings *model.RepositorySettings) error {
	if err := settings.Validate(); err != nil {
		return goerr.Wrap(err, "invalid repository settings")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.Name] = *settings
	return nil
}
