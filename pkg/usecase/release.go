package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

type releaseUseCase struct {
	slackClient interfaces.SlackClient
	store       interfaces.SettingsStore
	composer    *Composer
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(slackClient interfaces.SlackClient, store interfaces.SettingsStore, composer *Composer) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		slackClient: slackClient,
		store:       store,
		composer:    composer,
	}
}

// Announce posts the release announcement to every channel the bot is in.
// A failing channel never blocks the others; outcomes are collected per channel.
func (uc *releaseUseCase) Announce(ctx context.Context, event *model.ReleaseEvent) (*model.FanoutResult, error) {
	logger := ctxlog.From(ctx).With(
		"repo", event.Repository.Name,
		"tag", event.Release.TagName,
	)
	ctx = ctxlog.With(ctx, logger)

	settings, err := uc.store.Get(ctx, event.Repository.Name)
	if err != nil {
		logger.Error("Failed to get repository settings, announcing without them", "error", err)
	}
	if settings == nil {
		logger.Info("Repository is not registered, announcing without tracker and deploy")
		settings = &model.RepositorySettings{Name: event.Repository.Name}
	}

	channels, err := uc.slackClient.ListBotChannels(ctx)
	if err != nil {
		logger.Error("Failed to list bot channels, skipping announcement", "error", err)
		channels = nil
	}

	result := &model.FanoutResult{
		Channels: len(channels),
		Failed:   map[string]error{},
	}
	if len(channels) == 0 {
		logger.Info("No channel to announce release")
		return result, nil
	}

	announcement := uc.composer.Compose(ctx, settings, &event.Repository, &event.Release)

	var (
		mu sync.Mutex
		eg errgroup.Group
	)
	for _, ch := range channels {
		eg.Go(func() error {
			err := uc.send(ctx, ch.ID, announcement)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[ch.ID] = err
			} else {
				result.Delivered++
			}
			return nil
		})
	}
	_ = eg.Wait()

	if len(result.Failed) > 0 {
		for channelID, err := range result.Failed {
			logger.Warn("Failed to announce release to channel", "channel", channelID, "error", err)
		}
		logger.Warn("Release announcement partially failed",
			"channels", result.Channels,
			"delivered", result.Delivered,
			"failed", len(result.Failed),
		)
	} else {
		logger.Info("Announced release", "channels", result.Channels)
	}

	return result, nil
}

// send posts the announcement and threads the deploy follow-up under it
func (uc *releaseUseCase) send(ctx context.Context, channelID string, announcement *model.Announcement) error {
	ts, err := uc.slackClient.PostMessage(ctx, channelID, announcement.Message)
	if err != nil {
		return goerr.Wrap(err, "failed to post announcement", goerr.V("channel", channelID))
	}

	if announcement.FollowUp == nil {
		return nil
	}

	followUp := *announcement.FollowUp
	followUp.ThreadTS = ts
	if _, err := uc.slackClient.PostMessage(ctx, channelID, &followUp); err != nil {
		return goerr.Wrap(err, "failed to post deploy action", goerr.V("channel", channelID))
	}

	return nil
}
