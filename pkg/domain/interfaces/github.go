package interfaces

import (
	"context"

	"github.com/m-mizutani/buffet/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// CreateWebhook registers a release webhook on the repository and returns the hook URL
	CreateWebhook(ctx context.Context, owner, repo string) (string, error)

	// DispatchWorkflow triggers a workflow_dispatch run of workflowID at the given tag
	DispatchWorkflow(ctx context.Context, owner, repo, workflowID, tag string) error

	// GetLatestRun returns the most recent run of workflowID, or nil if there is none
	GetLatestRun(ctx context.Context, owner, repo, workflowID string) (*model.WorkflowRun, error)
}
