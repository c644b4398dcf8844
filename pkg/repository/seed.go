// Package repository holds helpers shared by the settings store implementations.
package repository

import (
	"context"
	"os"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Seed is the TOML layout of a settings seed file:
//
//	[[repository]]
//	name = "buffet"
//	owner = "GalenBry"
//	workflow_id = "main.yml"
//	tracker_project_key = "EX"
type Seed struct {
	Repositories []model.RepositorySettings `toml:"repository"`
}

// ParseSeed decodes a seed document
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed")
	}
	for i := range seed.Repositories {
		if err := seed.Repositories[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid repository in seed", goerr.V("index", i))
		}
	}
	return &seed, nil
}

// LoadSeedFile reads path and writes every repository into store
func LoadSeedFile(ctx context.Context, store interfaces.SettingsStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
	}

	seed, err := ParseSeed(data)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to load seed file", goerr.V("path", path))
	}

	for i := range seed.Repositories {
		if err := store.Put(ctx, &seed.Repositories[i]); err != nil {
			return i, goerr.Wrap(err, "failed to store seeded repository", goerr.V("name", seed.Repositories[i].Name))
		}
	}
	return len(seed.Repositories), nil
}
