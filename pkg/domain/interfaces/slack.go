package interfaces

import (
	"context"

	"github.com/m-mizutani/buffet/pkg/domain/model"
)

// SlackClient defines the chat operations the relay depends on
type SlackClient interface {
	// ListBotChannels returns every channel the bot is a member of
	ListBotChannels(ctx context.Context) ([]*model.Channel, error)

	// PostMessage posts msg to the channel and returns the message timestamp
	PostMessage(ctx context.Context, channelID string, msg *model.Message) (string, error)

	// PostEphemeral posts msg visible only to userID
	PostEphemeral(ctx context.Context, channelID, userID string, msg *model.Message) error

	// Respond answers a slash command through its response URL
	Respond(ctx context.Context, responseURL string, reply *model.CommandReply) error
}
