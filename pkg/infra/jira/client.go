package jira

import (
	"context"
	"net/http"
	"strings"

	"github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	api     *jira.Client
	baseURL string
}

// NewClient creates a Jira Cloud client authenticated with email and API token (basic auth)
func NewClient(baseURL, email, apiToken string) (interfaces.IssueTracker, error) {
	transport := jira.BasicAuthTransport{
		Username: email,
		Password: apiToken,
	}

	api, err := jira.NewClient(transport.Client(), baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create jira client", goerr.V("base_url", baseURL))
	}

	return &client{
		api:     api,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// GetIssue fetches the issue by key. A missing issue returns nil without error.
func (c *client) GetIssue(ctx context.Context, key model.IssueReference) (*model.ResolvedIssue, error) {
	issue, resp, err := c.api.Issue.GetWithContext(ctx, string(key), &jira.GetQueryOptions{
		Fields: "summary",
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get issue", goerr.V("key", key))
	}

	resolved := &model.ResolvedIssue{
		Key:  issue.Key,
		Self: issue.Self,
		URL:  c.baseURL + "/browse/" + issue.Key,
	}
	if issue.Fields != nil {
		resolved.Summary = issue.Fields.Summary
	}
	return resolved, nil
}
