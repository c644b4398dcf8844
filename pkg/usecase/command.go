package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/mattn/go-shellwords"
)

// UsageText is replied for unknown subcommands and wrong argument counts
const UsageText = "command must be of this format `setup [repository_owner] [repository_name] [workflow_id] [jira_project_key]` (use `-` to leave workflow or project unset)"

const unsetArgument = "-"

type commandUseCase struct {
	githubClient interfaces.GitHubClient
	store        interfaces.SettingsStore
}

// NewCommand creates a new instance of CommandUseCase
func NewCommand(githubClient interfaces.GitHubClient, store interfaces.SettingsStore) interfaces.CommandUseCase {
	return &commandUseCase{
		githubClient: githubClient,
		store:        store,
	}
}

// HandleCommand dispatches a /buffet subcommand. User mistakes are answered
// with a reply; an error is returned only when the reply itself cannot be built.
func (uc *commandUseCase) HandleCommand(ctx context.Context, cmd *model.SlashCommand) (*model.CommandReply, error) {
	logger := ctxlog.From(ctx)

	args, err := shellwords.Parse(cmd.Text)
	if err != nil {
		logger.Info("Failed to parse command text", "text", cmd.Text, "error", err)
		return &model.CommandReply{Text: UsageText}, nil
	}
	if len(args) == 0 {
		return &model.CommandReply{Text: UsageText}, nil
	}

	action, values := args[0], args[1:]
	logger.Info("Handling command", "command", cmd.Command, "action", action, "user", cmd.UserID)

	switch action {
	case "setup":
		if len(values) != 4 {
			return &model.CommandReply{Text: UsageText}, nil
		}
		return uc.setup(ctx, values[0], values[1], values[2], values[3])
	case "demo":
		return &model.CommandReply{Text: ":wave: Buffet is up and listening for releases", InChannel: true}, nil
	default:
		return &model.CommandReply{Text: UsageText}, nil
	}
}

func (uc *commandUseCase) setup(ctx context.Context, owner, repo, workflowID, projectKey string) (*model.CommandReply, error) {
	logger := ctxlog.From(ctx)

	settings := &model.RepositorySettings{
		Name:              repo,
		Owner:             owner,
		WorkflowID:        optionalArgument(workflowID),
		TrackerProjectKey: optionalArgument(projectKey),
	}
	if err := settings.Validate(); err != nil {
		return &model.CommandReply{Text: UsageText}, nil
	}

	if err := uc.store.Put(ctx, settings); err != nil {
		logger.Error("Failed to save repository settings", "error", err, "repo", repo)
		return &model.CommandReply{Text: fmt.Sprintf("An issue occurred while saving settings for %s/%s", owner, repo)}, nil
	}

	// Settings stay saved even if the hook exists already, so setup can be
	// re-run to change workflow or project.
	hookURL, err := uc.githubClient.CreateWebhook(ctx, owner, repo)
	if err != nil {
		logger.Warn("Failed to create webhook", "error", err, "owner", owner, "repo", repo)
		return &model.CommandReply{
			Text: fmt.Sprintf("Settings saved, but an issue occurred while creating a webhook for %s/%s: %s", owner, repo, err.Error()),
		}, nil
	}

	logger.Info("Repository registered", "owner", owner, "repo", repo, "hook", hookURL)
	return &model.CommandReply{
		Text:      fmt.Sprintf("Buffet is now listening to releases on this repository: %s", hookURL),
		InChannel: true,
	}, nil
}

func optionalArgument(v string) string {
	if v == unsetArgument {
		return ""
	}
	return v
}
