package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type webhookUseCase struct {
	releaseUC interfaces.ReleaseUseCase
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(releaseUC interfaces.ReleaseUseCase) interfaces.WebhookUseCase {
	return &webhookUseCase{
		releaseUC: releaseUC,
	}
}

// ProcessEvent processes a webhook event. Unsupported events and payloads
// that do not carry a release are ignored.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Ignoring unsupported event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	releaseEvent, ok := event.Payload.(*github.ReleaseEvent)
	if !ok {
		logger.Warn("Invalid release event payload")
		return nil
	}

	re, err := toReleaseEvent(releaseEvent)
	if err != nil {
		logger.Warn("Ignoring malformed release event", "error", err)
		return nil
	}

	result, err := uc.releaseUC.Announce(ctx, re)
	if err != nil {
		return goerr.Wrap(err, "failed to announce release", goerr.V("repo", re.Repository.Name))
	}

	logger.Info("Processed release event",
		"repo", re.Repository.Name,
		"tag", re.Release.TagName,
		"delivered", result.Delivered,
		"failed", len(result.Failed),
	)
	return nil
}

// toReleaseEvent extracts the announcement fields from a GitHub release event
func toReleaseEvent(event *github.ReleaseEvent) (*model.ReleaseEvent, error) {
	if event.GetRepo() == nil {
		return nil, goerr.New("missing repository information in release event")
	}
	if event.GetRelease() == nil {
		return nil, goerr.New("missing release information in release event")
	}

	// Use Get*() helper methods for nil-safe field access
	repo := event.GetRepo()
	release := event.GetRelease()
	if repo.GetName() == "" || release.GetTagName() == "" {
		return nil, goerr.New("missing required fields",
			goerr.V("repo", repo.GetName()),
			goerr.V("tag", release.GetTagName()),
		)
	}

	return &model.ReleaseEvent{
		Repository: model.Repository{
			Name:    repo.GetName(),
			HTMLURL: repo.GetHTMLURL(),
		},
		Release: model.Release{
			Name:    release.GetName(),
			TagName: release.GetTagName(),
			HTMLURL: release.GetHTMLURL(),
			URL:     release.GetURL(),
			Body:    release.GetBody(),
		},
	}, nil
}
