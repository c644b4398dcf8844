package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/buffet/pkg/domain/mock"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/buffet/pkg/repository/memory"
	"github.com/m-mizutani/buffet/pkg/usecase"
)

func newSlackClient(channels ...string) *mock.SlackClientMock {
	var seq atomic.Int64
	return &mock.SlackClientMock{
		ListBotChannelsFunc: func(ctx context.Context) ([]*model.Channel, error) {
			var result []*model.Channel
			for _, ch := range channels {
				result = append(result, &model.Channel{ID: ch})
			}
			return result, nil
		},
		PostMessageFunc: func(ctx context.Context, channelID string, msg *model.Message) (string, error) {
			return fmt.Sprintf("ts-%d", seq.Add(1)), nil
		},
	}
}

func newStore(t *testing.T, settings ...*model.RepositorySettings) *memory.Store {
	store := memory.New()
	for _, s := range settings {
		gt.NoError(t, store.Put(context.Background(), s))
	}
	return store
}

func TestReleaseUseCase_Announce(t *testing.T) {
	ctx := context.Background()

	t.Run("announces to every channel with threaded deploy action", func(t *testing.T) {
		slackClient := newSlackClient("C1", "C2")
		store := newStore(t, &model.RepositorySettings{Name: "buffet", Owner: "GalenBry", WorkflowID: "main.yml", TrackerProjectKey: "EX"})
		tracker := newIssueTracker()
		uc := usecase.NewRelease(slackClient, store, usecase.NewComposer(usecase.NewIssueLookup(tracker)))

		result, err := uc.Announce(ctx, newReleaseEvent())
		gt.NoError(t, err)
		gt.Number(t, result.Channels).Equal(2)
		gt.Number(t, result.Delivered).Equal(2)
		gt.Number(t, len(result.Failed)).Equal(0)

		posts := slackClient.PostMessageCalls()
		gt.A(t, posts).Length(4)

		byChannel := map[string][]*model.Message{}
		for _, p := range posts {
			byChannel[p.ChannelID] = append(byChannel[p.ChannelID], p.Msg)
		}
		for _, ch := range []string{"C1", "C2"} {
			msgs := byChannel[ch]
			gt.A(t, msgs).Length(2)

			announcement, followUp := msgs[0], msgs[1]
			gt.Value(t, announcement.ThreadTS).Equal("")
			gt.String(t, blockText(announcement)).Contains("EX-12")
			gt.String(t, blockText(announcement)).Contains("EX-13")
			gt.String(t, blockText(followUp)).Contains("deploy_release=buffet|v1.0")
			gt.Value(t, followUp.ThreadTS).NotEqual("")
		}
	})

	t.Run("unregistered repository is announced without deploy", func(t *testing.T) {
		slackClient := newSlackClient("C1")
		uc := usecase.NewRelease(slackClient, memory.New(), usecase.NewComposer(usecase.NewIssueLookup(nil)))

		result, err := uc.Announce(ctx, newReleaseEvent())
		gt.NoError(t, err)
		gt.Number(t, result.Delivered).Equal(1)

		posts := slackClient.PostMessageCalls()
		gt.A(t, posts).Length(1)
		gt.String(t, blockText(posts[0].Msg)).Contains(usecase.NoIssuesFound)
	})

	t.Run("channel listing failure suppresses all notifications", func(t *testing.T) {
		slackClient := newSlackClient()
		slackClient.ListBotChannelsFunc = func(ctx context.Context) ([]*model.Channel, error) {
			return nil, errors.New("slack is down")
		}
		uc := usecase.NewRelease(slackClient, newStore(t), usecase.NewComposer(usecase.NewIssueLookup(nil)))

		result, err := uc.Announce(ctx, newReleaseEvent())
		gt.NoError(t, err)
		gt.Number(t, result.Channels).Equal(0)
		gt.A(t, slackClient.PostMessageCalls()).Length(0)
	})

	t.Run("failing channel does not block others", func(t *testing.T) {
		slackClient := newSlackClient("C1", "C2", "C3")
		slackClient.PostMessageFunc = func(ctx context.Context, channelID string, msg *model.Message) (string, error) {
			if channelID == "C2" {
				return "", errors.New("not_in_channel")
			}
			return "ts", nil
		}
		store := newStore(t, &model.RepositorySettings{Name: "buffet", Owner: "GalenBry", WorkflowID: "main.yml"})
		uc := usecase.NewRelease(slackClient, store, usecase.NewComposer(usecase.NewIssueLookup(nil)))

		result, err := uc.Announce(ctx, newReleaseEvent())
		gt.NoError(t, err)
		gt.Number(t, result.Delivered).Equal(2)
		gt.Number(t, len(result.Failed)).Equal(1)
		gt.Error(t, result.Failed["C2"])

		// C2 gets no follow-up after its first post failed
		gt.A(t, slackClient.PostMessageCalls()).Length(5)
	})

	t.Run("store failure still announces", func(t *testing.T) {
		slackClient := newSlackClient("C1")
		store := &mock.SettingsStoreMock{
			GetFunc: func(ctx context.Context, name string) (*model.RepositorySettings, error) {
				return nil, errors.New("firestore unavailable")
			},
		}
		uc := usecase.NewRelease(slackClient, store, usecase.NewComposer(usecase.NewIssueLookup(nil)))

		result, err := uc.Announce(ctx, newReleaseEvent())
		gt.NoError(t, err)
		gt.Number(t, result.Delivered).Equal(1)
	})
}
