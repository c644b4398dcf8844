package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/buffet/pkg/domain/mock"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/buffet/pkg/usecase"
)

func TestCommandUseCase_Setup(t *testing.T) {
	ctx := context.Background()

	t.Run("registers settings and creates webhook", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{
			CreateWebhookFunc: func(ctx context.Context, owner, repo string) (string, error) {
				return "https://api.github.com/repos/acme/widget/hooks/1", nil
			},
		}
		store := newStore(t)
		uc := usecase.NewCommand(githubClient, store)

		reply, err := uc.HandleCommand(ctx, &model.SlashCommand{Command: "/buffet", Text: "setup acme widget ci.yml WID"})
		gt.NoError(t, err)
		gt.True(t, reply.InChannel)
		gt.String(t, reply.Text).Contains("https://api.github.com/repos/acme/widget/hooks/1")

		settings, err := store.Get(ctx, "widget")
		gt.NoError(t, err)
		gt.Value(t, *settings).Equal(model.RepositorySettings{
			Name: "widget", Owner: "acme", WorkflowID: "ci.yml", TrackerProjectKey: "WID",
		})
		hooks := githubClient.CreateWebhookCalls()
		gt.A(t, hooks).Length(1)
		gt.Value(t, hooks[0].Owner).Equal("acme")
		gt.Value(t, hooks[0].Repo).Equal("widget")
	})

	t.Run("wrong argument count replies usage without mutation", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{}
		store := &mock.SettingsStoreMock{}
		uc := usecase.NewCommand(githubClient, store)

		for _, text := range []string{"setup acme widget ci.yml", "setup acme widget ci.yml WID extra", "setup"} {
			reply, err := uc.HandleCommand(ctx, &model.SlashCommand{Command: "/buffet", Text: text})
			gt.NoError(t, err)
			gt.Value(t, reply.Text).Equal(usecase.UsageText)
			gt.False(t, reply.InChannel)
		}
		gt.A(t, store.PutCalls()).Length(0)
		gt.A(t, githubClient.CreateWebhookCalls()).Length(0)
	})

	t.Run("dash leaves workflow and project unset", func(t *testing.T) {
		store := newStore(t)
		uc := usecase.NewCommand(&mock.GitHubClientMock{}, store)

		_, err := uc.HandleCommand(ctx, &model.SlashCommand{Text: "setup acme widget - -"})
		gt.NoError(t, err)

		settings, err := store.Get(ctx, "widget")
		gt.NoError(t, err)
		gt.False(t, settings.HasWorkflow())
		gt.False(t, settings.HasTracker())
	})

	t.Run("webhook failure keeps settings", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{
			CreateWebhookFunc: func(ctx context.Context, owner, repo string) (string, error) {
				return "", errors.New("Hook already exists on this repository")
			},
		}
		store := newStore(t)
		uc := usecase.NewCommand(githubClient, store)

		reply, err := uc.HandleCommand(ctx, &model.SlashCommand{Text: "setup acme widget ci.yml WID"})
		gt.NoError(t, err)
		gt.False(t, reply.InChannel)
		gt.String(t, reply.Text).Contains("Hook already exists")

		settings, err := store.Get(ctx, "widget")
		gt.NoError(t, err)
		gt.Value(t, settings.WorkflowID).Equal("ci.yml")
	})

	t.Run("store failure skips webhook", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{}
		store := &mock.SettingsStoreMock{
			PutFunc: func(ctx context.Context, settings *model.RepositorySettings) error {
				return errors.New("unavailable")
			},
		}
		uc := usecase.NewCommand(githubClient, store)

		reply, err := uc.HandleCommand(ctx, &model.SlashCommand{Text: "setup acme widget ci.yml WID"})
		gt.NoError(t, err)
		gt.String(t, reply.Text).Contains("saving settings")
		gt.A(t, githubClient.CreateWebhookCalls()).Length(0)
	})
}

func TestCommandUseCase_Other(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCommand(&mock.GitHubClientMock{}, newStore(t))

	t.Run("demo acknowledges", func(t *testing.T) {
		reply, err := uc.HandleCommand(ctx, &model.SlashCommand{Text: "demo"})
		gt.NoError(t, err)
		gt.True(t, reply.InChannel)
		gt.String(t, reply.Text).Contains("Buffet")
	})

	for _, text := range []string{"", "unknown", `setup "unterminated`} {
		t.Run("usage for "+text, func(t *testing.T) {
			reply, err := uc.HandleCommand(ctx, &model.SlashCommand{Text: text})
			gt.NoError(t, err)
			gt.Value(t, reply.Text).Equal(usecase.UsageText)
		})
	}
}
