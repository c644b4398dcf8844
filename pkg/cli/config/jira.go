package config

import (
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	jirainfra "github.com/m-mizutani/buffet/pkg/infra/jira"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Jira holds issue tracker configuration
type Jira struct {
	BaseURL  string
	Email    string
	APIToken string `masq:"secret"`
}

// Flags returns CLI flags for Jira configuration
func (c *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-base-url",
			Usage:       "Jira site URL, e.g. https://example.atlassian.net (issue enrichment is disabled when empty)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("BUFFET_JIRA_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "jira-email",
			Usage:       "Jira account email",
			Destination: &c.Email,
			Sources:     cli.EnvVars("BUFFET_JIRA_EMAIL"),
		},
		&cli.StringFlag{
			Name:        "jira-api-token",
			Usage:       "Jira API token",
			Destination: &c.APIToken,
			Sources:     cli.EnvVars("BUFFET_JIRA_API_TOKEN"),
		},
	}
}

// Configure builds the issue tracker client. It returns nil when Jira is not configured.
func (c *Jira) Configure() (interfaces.IssueTracker, error) {
	if c.BaseURL == "" {
		return nil, nil
	}
	if c.Email == "" || c.APIToken == "" {
		return nil, goerr.New("jira-email and jira-api-token are required with jira-base-url")
	}
	return jirainfra.NewClient(c.BaseURL, c.Email, c.APIToken)
}
