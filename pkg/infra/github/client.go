package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// TagInput is the workflow_dispatch input carrying the release tag
const TagInput = "tag"

type client struct {
	githubClient  *github.Client
	callbackURL   string
	webhookSecret string
}

// Option configures the GitHub client
type Option func(*client)

// WithBaseURL points the client at another REST API root, e.g. a test server.
// An unparsable URL leaves the default in place.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err == nil {
			c.githubClient.BaseURL = u
		}
	}
}

// NewClient creates a GitHub client authenticated with a personal access token.
// callbackURL and webhookSecret are used for webhooks created by CreateWebhook.
func NewClient(token, callbackURL, webhookSecret string, opts ...Option) interfaces.GitHubClient {
	return newClient(github.NewClient(nil).WithAuthToken(token), callbackURL, webhookSecret, opts...)
}

// NewAppClient creates a GitHub client with GitHub App installation authentication
func NewAppClient(appID, installationID int64, privateKey []byte, callbackURL, webhookSecret string, opts ...Option) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}

	return newClient(github.NewClient(&http.Client{Transport: itr}), callbackURL, webhookSecret, opts...), nil
}

func newClient(githubClient *github.Client, callbackURL, webhookSecret string, opts ...Option) *client {
	c := &client{
		githubClient:  githubClient,
		callbackURL:   callbackURL,
		webhookSecret: webhookSecret,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateWebhook registers a JSON release webhook pointing back at buffet
func (c *client) CreateWebhook(ctx context.Context, owner, repo string) (string, error) {
	hook := &github.Hook{
		Name:   github.Ptr("web"),
		Active: github.Ptr(true),
		Events: []string{"release"},
		Config: &github.HookConfig{
			URL:         github.Ptr(c.callbackURL),
			ContentType: github.Ptr("json"),
			Secret:      github.Ptr(c.webhookSecret),
		},
	}

	created, _, err := c.githubClient.Repositories.CreateHook(ctx, owner, repo, hook)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create webhook",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return created.GetURL(), nil
}

// DispatchWorkflow triggers workflowID with the tag as both ref and input
func (c *client) DispatchWorkflow(ctx context.Context, owner, repo, workflowID, tag string) error {
	event := github.CreateWorkflowDispatchEventRequest{
		Ref: tag,
		Inputs: map[string]any{
			TagInput: tag,
		},
	}

	if _, err := c.githubClient.Actions.CreateWorkflowDispatchEventByFileName(ctx, owner, repo, workflowID, event); err != nil {
		return goerr.Wrap(err, "failed to dispatch workflow",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("workflow", workflowID),
			goerr.V("tag", tag),
		)
	}

	return nil
}

// GetLatestRun returns the newest run of workflowID, nil if the workflow has no run
func (c *client) GetLatestRun(ctx context.Context, owner, repo, workflowID string) (*model.WorkflowRun, error) {
	runs, _, err := c.githubClient.Actions.ListWorkflowRunsByFileName(ctx, owner, repo, workflowID, &github.ListWorkflowRunsOptions{
		Event:       "workflow_dispatch",
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workflow runs",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("workflow", workflowID),
		)
	}

	if len(runs.WorkflowRuns) == 0 {
		return nil, nil
	}

	latest := runs.WorkflowRuns[0]
	return &model.WorkflowRun{
		ID:      latest.GetID(),
		Status:  latest.GetStatus(),
		HTMLURL: latest.GetHTMLURL(),
	}, nil
}
