package slack

import (
	"context"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	responseTypeEphemeral = "ephemeral"
	responseTypeInChannel = "in_channel"
)

type client struct {
	api *slack.Client
}

// NewClient creates a Slack client for the bot token
func NewClient(token string, opts ...slack.Option) interfaces.SlackClient {
	return &client{
		api: slack.New(token, opts...),
	}
}

// ListBotChannels returns every conversation the bot user belongs to
func (c *client) ListBotChannels(ctx context.Context) ([]*model.Channel, error) {
	auth, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get bot identity")
	}

	var channels []*model.Channel
	params := &slack.GetConversationsForUserParameters{
		UserID:          auth.UserID,
		Types:           []string{"public_channel", "private_channel"},
		Limit:           200,
		ExcludeArchived: true,
	}
	for {
		page, cursor, err := c.api.GetConversationsForUserContext(ctx, params)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list bot channels", goerr.V("user_id", auth.UserID))
		}
		for _, ch := range page {
			channels = append(channels, &model.Channel{ID: ch.ID, Name: ch.Name})
		}
		if cursor == "" {
			break
		}
		params.Cursor = cursor
	}

	return channels, nil
}

// PostMessage posts msg and returns its timestamp
func (c *client) PostMessage(ctx context.Context, channelID string, msg *model.Message) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channelID, messageOptions(msg)...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channel", channelID))
	}
	return ts, nil
}

// PostEphemeral posts msg visible only to userID
func (c *client) PostEphemeral(ctx context.Context, channelID, userID string, msg *model.Message) error {
	if _, err := c.api.PostEphemeralContext(ctx, channelID, userID, messageOptions(msg)...); err != nil {
		return goerr.Wrap(err, "failed to post ephemeral message",
			goerr.V("channel", channelID),
			goerr.V("user", userID),
		)
	}
	return nil
}

// Respond posts reply to a slash command response URL
func (c *client) Respond(ctx context.Context, responseURL string, reply *model.CommandReply) error {
	msg := &slack.WebhookMessage{
		Text:         reply.Text,
		ResponseType: responseTypeEphemeral,
	}
	if reply.InChannel {
		msg.ResponseType = responseTypeInChannel
	}

	if err := slack.PostWebhookContext(ctx, responseURL, msg); err != nil {
		return goerr.Wrap(err, "failed to respond to command", goerr.V("in_channel", reply.InChannel))
	}
	return nil
}

func messageOptions(msg *model.Message) []slack.MsgOption {
	opts := []slack.MsgOption{
		slack.MsgOptionText(msg.Text, false),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	}
	if len(msg.Blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(msg.Blocks...))
	}
	if msg.ThreadTS != "" {
		opts = append(opts, slack.MsgOptionTS(msg.ThreadTS))
	}
	return opts
}
