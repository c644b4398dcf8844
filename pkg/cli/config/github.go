package config

import (
	"os"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/buffet/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	WebhookSecret  string `masq:"secret"`
	CallbackURL    string
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKeyFile string
	BaseURL        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("BUFFET_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-callback-url",
			Usage:       "Public URL of the GitHub webhook endpoint, registered by `/buffet setup`",
			Required:    true,
			Destination: &c.CallbackURL,
			Sources:     cli.EnvVars("BUFFET_GITHUB_CALLBACK_URL"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token (used unless GitHub App credentials are given)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("BUFFET_GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("BUFFET_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("BUFFET_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("BUFFET_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub REST API root, for GitHub Enterprise Server",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("BUFFET_GITHUB_BASE_URL"),
		},
	}
}

// Configure builds the GitHub client. GitHub App credentials take precedence over a token.
func (c *GitHub) Configure() (interfaces.GitHubClient, error) {
	var opts []githubinfra.Option
	if c.BaseURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.BaseURL))
	}

	if c.AppID != 0 {
		if c.InstallationID == 0 || c.PrivateKeyFile == "" {
			return nil, goerr.New("github-installation-id and github-private-key-file are required with github-app-id")
		}
		privateKey, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, privateKey, c.CallbackURL, c.WebhookSecret, opts...)
	}

	if c.Token == "" {
		return nil, goerr.New("either github-token or GitHub App credentials are required")
	}
	return githubinfra.NewClient(c.Token, c.CallbackURL, c.WebhookSecret, opts...), nil
}
