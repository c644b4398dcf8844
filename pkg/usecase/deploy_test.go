package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/buffet/pkg/domain/mock"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/buffet/pkg/usecase"
)

func newDeployRequest() *model.DeployRequest {
	return &model.DeployRequest{
		Action:    model.DeployAction{RepositoryName: "buffet", TagName: "v1.0"},
		UserID:    "U123",
		ChannelID: "C1",
		ThreadTS:  "1700000000.000100",
	}
}

func TestDeployUseCase_Deploy(t *testing.T) {
	ctx := context.Background()
	registered := &model.RepositorySettings{Name: "buffet", Owner: "GalenBry", WorkflowID: "main.yml", TrackerProjectKey: "EX"}

	t.Run("dispatches, acknowledges and reports with run link", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{
			GetLatestRunFunc: func(ctx context.Context, owner, repo, workflowID string) (*model.WorkflowRun, error) {
				return &model.WorkflowRun{ID: 42, HTMLURL: "https://github.com/GalenBry/buffet/actions/runs/42"}, nil
			},
		}
		slackClient := newSlackClient()
		uc := usecase.NewDeploy(githubClient, slackClient, newStore(t, registered), usecase.WithSettleDelay(time.Millisecond))

		run, err := uc.Deploy(ctx, newDeployRequest())
		gt.NoError(t, err)
		gt.Value(t, run.State).Equal(model.DeployStateReported)
		gt.Value(t, run.ID).NotEqual("")
		gt.Value(t, run.Run.ID).Equal(int64(42))

		dispatched := githubClient.DispatchWorkflowCalls()
		gt.A(t, dispatched).Length(1)
		gt.Value(t, dispatched[0].Owner).Equal("GalenBry")
		gt.Value(t, dispatched[0].Repo).Equal("buffet")
		gt.Value(t, dispatched[0].WorkflowID).Equal("main.yml")
		gt.Value(t, dispatched[0].Tag).Equal("v1.0")
		gt.A(t, githubClient.GetLatestRunCalls()).Length(1)

		posts := slackClient.PostMessageCalls()
		gt.A(t, posts).Length(2)
		gt.String(t, posts[0].Msg.Text).Contains("Deploying")
		gt.String(t, posts[1].Msg.Text).Contains("<@U123>")
		gt.String(t, posts[1].Msg.Text).Contains("https://github.com/GalenBry/buffet/actions/runs/42")
		for _, p := range posts {
			gt.Value(t, p.ChannelID).Equal("C1")
			gt.Value(t, p.Msg.ThreadTS).Equal("1700000000.000100")
		}
	})

	t.Run("no workflow is rejected without trigger", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{}
		slackClient := newSlackClient()
		store := newStore(t, &model.RepositorySettings{Name: "buffet", Owner: "GalenBry", TrackerProjectKey: "EX"})
		uc := usecase.NewDeploy(githubClient, slackClient, store, usecase.WithSettleDelay(time.Millisecond))

		run, err := uc.Deploy(ctx, newDeployRequest())
		gt.NoError(t, err)
		gt.Value(t, run.State).Equal(model.DeployStateRejected)
		gt.A(t, githubClient.DispatchWorkflowCalls()).Length(0)
		gt.A(t, slackClient.PostEphemeralCalls()).Length(1)
		gt.Value(t, slackClient.PostEphemeralCalls()[0].UserID).Equal("U123")
		gt.A(t, slackClient.PostMessageCalls()).Length(0)
	})

	t.Run("unregistered repository is rejected", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{}
		uc := usecase.NewDeploy(githubClient, newSlackClient(), newStore(t))

		run, err := uc.Deploy(ctx, newDeployRequest())
		gt.NoError(t, err)
		gt.Value(t, run.State).Equal(model.DeployStateRejected)
		gt.A(t, githubClient.DispatchWorkflowCalls()).Length(0)
	})

	t.Run("trigger failure ends in failed", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{
			DispatchWorkflowFunc: func(ctx context.Context, owner, repo, workflowID, tag string) error {
				return errors.New("422 workflow does not have workflow_dispatch trigger")
			},
		}
		slackClient := newSlackClient()
		uc := usecase.NewDeploy(githubClient, slackClient, newStore(t, registered), usecase.WithSettleDelay(time.Millisecond))

		run, err := uc.Deploy(ctx, newDeployRequest())
		gt.Error(t, err)
		gt.Value(t, run.State).Equal(model.DeployStateFailed)
		gt.A(t, githubClient.GetLatestRunCalls()).Length(0)

		posts := slackClient.PostMessageCalls()
		gt.A(t, posts).Length(1)
		gt.String(t, posts[0].Msg.Text).Contains("Failed to trigger")
	})

	t.Run("reconciliation failure still reports", func(t *testing.T) {
		githubClient := &mock.GitHubClientMock{
			GetLatestRunFunc: func(ctx context.Context, owner, repo, workflowID string) (*model.WorkflowRun, error) {
				return nil, errors.New("rate limited")
			},
		}
		slackClient := newSlackClient()
		uc := usecase.NewDeploy(githubClient, slackClient, newStore(t, registered), usecase.WithSettleDelay(time.Millisecond))

		run, err := uc.Deploy(ctx, newDeployRequest())
		gt.NoError(t, err)
		gt.Value(t, run.State).Equal(model.DeployStateReported)
		gt.Value(t, run.Run).Nil()

		posts := slackClient.PostMessageCalls()
		gt.A(t, posts).Length(2)
		gt.String(t, posts[1].Msg.Text).NotContains("View workflow run")
	})

	t.Run("waits for the settle delay before polling", func(t *testing.T) {
		var dispatchedAt, polledAt time.Time
		githubClient := &mock.GitHubClientMock{
			DispatchWorkflowFunc: func(ctx context.Context, owner, repo, workflowID, tag string) error {
				dispatchedAt = time.Now()
				return nil
			},
			GetLatestRunFunc: func(ctx context.Context, owner, repo, workflowID string) (*model.WorkflowRun, error) {
				polledAt = time.Now()
				return nil, nil
			},
		}
		delay := 50 * time.Millisecond
		uc := usecase.NewDeploy(githubClient, newSlackClient(), newStore(t, registered), usecase.WithSettleDelay(delay))

		_, err := uc.Deploy(ctx, newDeployRequest())
		gt.NoError(t, err)
		gt.True(t, polledAt.Sub(dispatchedAt) >= delay)
	})
}
