package config

import (
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	slackinfra "github.com/m-mizutani/buffet/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack app configuration
type Slack struct {
	BotToken      string `masq:"secret"`
	SigningSecret string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot user OAuth token",
			Required:    true,
			Destination: &c.BotToken,
			Sources:     cli.EnvVars("BUFFET_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack app signing secret for slash commands and interactions",
			Required:    true,
			Destination: &c.SigningSecret,
			Sources:     cli.EnvVars("BUFFET_SLACK_SIGNING_SECRET"),
		},
	}
}

// Configure builds the Slack client
func (c *Slack) Configure() interfaces.SlackClient {
	return slackinfra.NewClient(c.BotToken)
}
