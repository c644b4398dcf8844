package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultSettleDelay is how long to wait after dispatching a workflow before
// looking up its run, so GitHub's run list has caught up.
const DefaultSettleDelay = 5 * time.Second

type deployUseCase struct {
	githubClient interfaces.GitHubClient
	slackClient  interfaces.SlackClient
	store        interfaces.SettingsStore
	settleDelay  time.Duration
}

// DeployOption configures the deploy use case
type DeployOption func(*deployUseCase)

// WithSettleDelay overrides DefaultSettleDelay
func WithSettleDelay(d time.Duration) DeployOption {
	return func(uc *deployUseCase) {
		uc.settleDelay = d
	}
}

// NewDeploy creates a new instance of DeployUseCase
func NewDeploy(githubClient interfaces.GitHubClient, slackClient interfaces.SlackClient, store interfaces.SettingsStore, opts ...DeployOption) interfaces.DeployUseCase {
	uc := &deployUseCase{
		githubClient: githubClient,
		slackClient:  slackClient,
		store:        store,
		settleDelay:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Deploy runs validate -> trigger -> acknowledge -> reconcile -> report.
// It returns an error only when the workflow could not be triggered; the
// returned run carries the terminal state either way.
func (uc *deployUseCase) Deploy(ctx context.Context, req *model.DeployRequest) (*model.DeployRun, error) {
	run := model.NewDeployRun(uuid.NewString(), req)
	logger := ctxlog.From(ctx).With(
		"deploy_id", run.ID,
		"repo", req.Action.RepositoryName,
		"tag", req.Action.TagName,
		"user", req.UserID,
	)
	ctx = ctxlog.With(ctx, logger)

	settings, err := uc.store.Get(ctx, req.Action.RepositoryName)
	if err != nil {
		logger.Error("Failed to get repository settings", "error", err)
		settings = nil
	}
	if !settings.HasWorkflow() {
		if err := run.Transition(model.DeployStateRejected); err != nil {
			return nil, err
		}
		logger.Info("Deploy rejected, no workflow configured")
		uc.notifyUser(ctx, req, fmt.Sprintf("No workflow is configured for *%s*. Run `/buffet setup` with a workflow first.", req.Action.RepositoryName))
		return run, nil
	}

	if err := run.Transition(model.DeployStateTriggering); err != nil {
		return nil, err
	}
	if err := uc.githubClient.DispatchWorkflow(ctx, settings.Owner, settings.Name, settings.WorkflowID, req.Action.TagName); err != nil {
		if terr := run.Transition(model.DeployStateFailed); terr != nil {
			return nil, terr
		}
		uc.reply(ctx, req, fmt.Sprintf(":x: Failed to trigger `%s` for *%s* at `%s`", settings.WorkflowID, settings.Name, req.Action.TagName))
		return run, goerr.Wrap(err, "failed to dispatch workflow",
			goerr.V("owner", settings.Owner),
			goerr.V("repo", settings.Name),
			goerr.V("workflow", settings.WorkflowID),
			goerr.V("tag", req.Action.TagName),
		)
	}

	if err := run.Transition(model.DeployStateAcknowledged); err != nil {
		return nil, err
	}
	logger.Info("Workflow dispatched", "workflow", settings.WorkflowID)
	uc.reply(ctx, req, fmt.Sprintf(":hourglass_flowing_sand: Deploying *%s* at `%s`...", settings.Name, req.Action.TagName))

	if err := run.Transition(model.DeployStateReconciling); err != nil {
		return nil, err
	}
	run.Run = uc.reconcile(ctx, settings)

	if err := run.Transition(model.DeployStateReported); err != nil {
		return nil, err
	}
	uc.reply(ctx, req, reportText(req, run.Run))

	return run, nil
}

// reconcile waits once for the settle delay and fetches the latest run.
// Any failure only loses the run link.
func (uc *deployUseCase) reconcile(ctx context.Context, settings *model.RepositorySettings) *model.WorkflowRun {
	logger := ctxlog.From(ctx)

	timer := time.NewTimer(uc.settleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		logger.Warn("Deploy reconciliation interrupted", "error", ctx.Err())
		return nil
	}

	run, err := uc.githubClient.GetLatestRun(ctx, settings.Owner, settings.Name, settings.WorkflowID)
	if err != nil {
		logger.Warn("Failed to get latest workflow run", "error", err)
		return nil
	}
	if run == nil {
		logger.Info("No workflow run found after dispatch")
	}
	return run
}

func reportText(req *model.DeployRequest, run *model.WorkflowRun) string {
	text := fmt.Sprintf(":rocket: <@%s> deployed *%s* at `%s`", req.UserID, req.Action.RepositoryName, req.Action.TagName)
	if run != nil && run.HTMLURL != "" {
		text += fmt.Sprintf("\n<%s|View workflow run>", run.HTMLURL)
	}
	return text
}

func (uc *deployUseCase) reply(ctx context.Context, req *model.DeployRequest, text string) {
	msg := &model.Message{Text: text, ThreadTS: req.ThreadTS}
	if _, err := uc.slackClient.PostMessage(ctx, req.ChannelID, msg); err != nil {
		ctxlog.From(ctx).Warn("Failed to post deploy notice", "channel", req.ChannelID, "error", err)
	}
}

func (uc *deployUseCase) notifyUser(ctx context.Context, req *model.DeployRequest, text string) {
	msg := &model.Message{Text: text, ThreadTS: req.ThreadTS}
	if err := uc.slackClient.PostEphemeral(ctx, req.ChannelID, req.UserID, msg); err != nil {
		ctxlog.From(ctx).Warn("Failed to notify user", "channel", req.ChannelID, "error", err)
	}
}
