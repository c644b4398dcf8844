package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/repository"
	"github.com/m-mizutani/buffet/pkg/repository/firestore"
	"github.com/m-mizutani/buffet/pkg/repository/memory"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Store holds repository settings store configuration
type Store struct {
	FirestoreProjectID       string
	FirestoreDatabaseID      string
	FirestoreCollection      string
	FirestoreCredentialsFile string
	SeedFile                 string
}

// Flags returns CLI flags for the settings store
func (c *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project of the Firestore settings store (in-memory store when empty)",
			Destination: &c.FirestoreProjectID,
			Sources:     cli.EnvVars("BUFFET_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Destination: &c.FirestoreDatabaseID,
			Sources:     cli.EnvVars("BUFFET_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection holding repository settings",
			Value:       firestore.DefaultCollection,
			Destination: &c.FirestoreCollection,
			Sources:     cli.EnvVars("BUFFET_FIRESTORE_COLLECTION"),
		},
		&cli.StringFlag{
			Name:        "firestore-credentials-file",
			Usage:       "Service account key file (application default credentials when empty)",
			Destination: &c.FirestoreCredentialsFile,
			Sources:     cli.EnvVars("BUFFET_FIRESTORE_CREDENTIALS_FILE"),
		},
		&cli.StringFlag{
			Name:        "repositories-file",
			Usage:       "TOML file of repository settings loaded into the store at startup",
			Destination: &c.SeedFile,
			Sources:     cli.EnvVars("BUFFET_REPOSITORIES_FILE"),
		},
	}
}

// Configure builds the settings store and loads the seed file if any.
// The returned closer releases the store.
func (c *Store) Configure(ctx context.Context) (interfaces.SettingsStore, func(), error) {
	logger := ctxlog.From(ctx)

	var (
		store  interfaces.SettingsStore
		closer = func() {}
	)

	if c.FirestoreProjectID != "" {
		var clientOpts []option.ClientOption
		if c.FirestoreCredentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(c.FirestoreCredentialsFile))
		}

		fs, err := firestore.New(ctx, c.FirestoreProjectID, c.FirestoreDatabaseID, clientOpts,
			firestore.WithCollection(c.FirestoreCollection),
		)
		if err != nil {
			return nil, nil, err
		}
		store = fs
		closer = func() {
			if err := fs.Close(); err != nil {
				logger.Warn("Failed to close firestore client", "error", err)
			}
		}
		logger.Info("Using firestore settings store",
			slog.String("project_id", c.FirestoreProjectID),
			slog.String("collection", c.FirestoreCollection),
		)
	} else {
		store = memory.New()
		logger.Info("Using in-memory settings store")
	}

	if c.SeedFile != "" {
		n, err := repository.LoadSeedFile(ctx, store, c.SeedFile)
		if err != nil {
			closer()
			return nil, nil, goerr.Wrap(err, "failed to seed settings store")
		}
		logger.Info("Seeded repository settings", slog.Int("count", n), slog.String("path", c.SeedFile))
	}

	return store, closer, nil
}
