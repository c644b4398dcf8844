package config

import (
	"time"

	"github.com/m-mizutani/buffet/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Deploy holds deploy workflow configuration
type Deploy struct {
	SettleDelay time.Duration
}

// Flags returns CLI flags for the deploy workflow
func (c *Deploy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "deploy-settle-delay",
			Usage:       "Wait between dispatching a workflow and looking up its run",
			Value:       usecase.DefaultSettleDelay,
			Destination: &c.SettleDelay,
			Sources:     cli.EnvVars("BUFFET_DEPLOY_SETTLE_DELAY"),
		},
	}
}

// Options returns deploy use case options
func (c *Deploy) Options() []usecase.DeployOption {
	return []usecase.DeployOption{
		usecase.WithSettleDelay(c.SettleDelay),
	}
}
