package interfaces

import (
	"context"

	"github.com/m-mizutani/buffet/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// ReleaseUseCase announces releases to chat
type ReleaseUseCase interface {
	// Announce posts the release announcement to every channel the bot occupies
	Announce(ctx context.Context, event *model.ReleaseEvent) (*model.FanoutResult, error)
}

// DeployUseCase runs the deploy workflow for a chat action
type DeployUseCase interface {
	Deploy(ctx context.Context, req *model.DeployRequest) (*model.DeployRun, error)
}

// CommandUseCase handles slash commands
type CommandUseCase interface {
	HandleCommand(ctx context.Context, cmd *model.SlashCommand) (*model.CommandReply, error)
}
