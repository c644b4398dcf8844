package model

import "github.com/m-mizutani/goerr/v2"

// RepositorySettings holds the integration config registered for a repository.
// Name is the unique key.
type RepositorySettings struct {
	Name              string `firestore:"name" toml:"name"`
	Owner             string `firestore:"owner" toml:"owner"`
	WorkflowID        string `firestore:"workflow_id" toml:"workflow_id"`
	TrackerProjectKey string `firestore:"tracker_project_key" toml:"tracker_project_key"`
}

// Validate checks that the keyed fields are present
func (s *RepositorySettings) Validate() error {
	if s.Name == "" {
		return goerr.New("repository name is required")
	}
	if s.Owner == "" {
		return goerr.New("repository owner is required", goerr.V("name", s.Name))
	}
	return nil
}

// HasWorkflow reports whether a CI workflow is configured for deploys
func (s *RepositorySettings) HasWorkflow() bool {
	return s != nil && s.WorkflowID != ""
}

// HasTracker reports whether an issue-tracker project is configured
func (s *RepositorySettings) HasTracker() bool {
	return s != nil && s.TrackerProjectKey != ""
}
