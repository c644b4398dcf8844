package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the collection holding one document per repository name
const DefaultCollection = "repositories"

// Store persists repository settings in Firestore
type Store struct {
	client     *firestore.Client
	collection string
}

var _ interfaces.SettingsStore = &Store{}

// Option configures the Firestore store
type Option func(*Store)

// WithCollection overrides DefaultCollection
func WithCollection(name string) Option {
	return func(s *Store) {
		s.collection = name
	}
}

// New connects to the Firestore database of projectID
func New(ctx context.Context, projectID, databaseID string, clientOpts []option.ClientOption, opts ...Option) (*Store, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	s := &Store{
		client:     client,
		collection: DefaultCollection,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the client
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the settings document for name, or nil if it does not exist
func (s *Store) Get(ctx context.Context, name string) (*model.RepositorySettings, error) {
	doc, err := s.client.Collection(s.collection).Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get repository settings", goerr.V("name", name))
	}

	var settings model.RepositorySettings
	if err := doc.DataTo(&settings); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repository settings", goerr.V("name", name))
	}
	return &settings, nil
}

// Put overwrites the settings document keyed by settings.Name
func (s *Store) Put(ctx context.Context, settings *model.RepositorySettings) error {
	if err := settings.Validate(); err != nil {
		return goerr.Wrap(err, "invalid repository settings")
	}

	if _, err := s.client.Collection(s.collection).Doc(settings.Name).Set(ctx, settings); err != nil {
		return goerr.Wrap(err, "failed to put repository settings", goerr.V("name", settings.Name))
	}
	return nil
}
