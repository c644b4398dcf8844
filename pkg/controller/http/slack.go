package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/buffet/pkg/utils/async"
	"github.com/m-mizutani/buffet/pkg/utils/errutil"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	responseTypeEphemeral = "ephemeral"
	responseTypeInChannel = "in_channel"
)

// SlackHandler handles slash commands and interactive actions from Slack
type SlackHandler struct {
	lifetime      context.Context
	signingSecret string
	slackClient   interfaces.SlackClient
	commandUC     interfaces.CommandUseCase
	deployUC      interfaces.DeployUseCase
}

func newSlackHandler(lifetime context.Context, cfg *config) *SlackHandler {
	return &SlackHandler{
		lifetime:      lifetime,
		signingSecret: cfg.slackSigningSecret,
		slackClient:   cfg.slackClient,
		commandUC:     cfg.commandUC,
		deployUC:      cfg.deployUC,
	}
}

// Verify is a middleware rejecting requests without a valid Slack signature.
// The body is restored for the next handler.
func (h *SlackHandler) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.From(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
			return
		}
		_ = r.Body.Close()

		verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
		if err != nil {
			logger.Warn("Missing Slack signature headers", "error", err)
			writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
			return
		}
		if _, err := verifier.Write(body); err != nil {
			writeError(w, goerr.Wrap(err, "failed to verify signature"), http.StatusInternalServerError)
			return
		}
		if err := verifier.Ensure(); err != nil {
			logger.Warn("Invalid Slack signature", "error", err)
			writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// HandleCommand handles a slash command. With a Slack client and a response
// URL the command is acknowledged at once and answered in the background,
// keeping setup's GitHub calls out of Slack's 3 second deadline. Otherwise
// the reply is the response body.
func (h *SlackHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to parse slash command", "error", err)
		writeError(w, goerr.Wrap(err, "invalid slash command"), http.StatusBadRequest)
		return
	}

	cmd := &model.SlashCommand{
		Command:   s.Command,
		Text:      s.Text,
		UserID:    s.UserID,
		ChannelID: s.ChannelID,
	}

	if h.slackClient != nil && s.ResponseURL != "" {
		async.Dispatch(ctx, "command", func(ctx context.Context) error {
			reply, err := h.commandUC.HandleCommand(ctx, cmd)
			if err != nil {
				return err
			}
			return h.slackClient.Respond(ctx, s.ResponseURL, reply)
		}, async.WithLifetime(h.lifetime))

		w.WriteHeader(http.StatusOK)
		return
	}

	reply, err := h.commandUC.HandleCommand(ctx, cmd)
	if err != nil {
		errutil.Handle(ctx, "Failed to handle slash command", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, commandResponse(reply), http.StatusOK)
}

func commandResponse(reply *model.CommandReply) *slack.Msg {
	msg := &slack.Msg{
		ResponseType: responseTypeEphemeral,
		Text:         reply.Text,
	}
	if reply.InChannel {
		msg.ResponseType = responseTypeInChannel
	}
	return msg
}

// HandleInteraction acknowledges a block action at once and runs the deploy
// in the background. Actions other than the Deploy button are ignored.
func (h *SlackHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &callback); err != nil {
		logger.Warn("Failed to parse interaction payload", "error", err)
		writeError(w, goerr.Wrap(err, "invalid interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != slack.InteractionTypeBlockActions {
		logger.Debug("Ignoring interaction", "type", callback.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, action := range callback.ActionCallback.BlockActions {
		if action.ActionID != model.ActionIDDeployRelease {
			logger.Debug("Ignoring block action", "action_id", action.ActionID)
			continue
		}

		deployAction, err := model.ParseDeployAction(action.Value)
		if err != nil {
			logger.Warn("Invalid deploy action", "error", err)
			continue
		}

		req := &model.DeployRequest{
			Action:    *deployAction,
			UserID:    callback.User.ID,
			ChannelID: callback.Channel.ID,
			ThreadTS:  threadTimestamp(&callback),
		}
		async.Dispatch(ctx, "deploy", func(ctx context.Context) error {
			_, err := h.deployUC.Deploy(ctx, req)
			return err
		}, async.WithLifetime(h.lifetime))
	}

	w.WriteHeader(http.StatusOK)
}

// threadTimestamp returns the thread of the clicked message, or the message
// itself when it is not threaded
func threadTimestamp(callback *slack.InteractionCallback) string {
	if callback.Container.ThreadTs != "" {
		return callback.Container.ThreadTs
	}
	if callback.Message.ThreadTimestamp != "" {
		return callback.Message.ThreadTimestamp
	}
	return callback.Container.MessageTs
}
