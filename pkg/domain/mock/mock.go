// Package mock provides test doubles for the domain interfaces in the
// layout of moq generated mocks. Calls are recorded and can be read with the
// <Method>Calls accessors. Unlike moq, a nil <Method>Func returns zero values
// instead of panicking, so tests only set the functions they care about.
package mock

import (
	"context"
	"sync"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
)

var (
	_ interfaces.GitHubClient   = &GitHubClientMock{}
	_ interfaces.SlackClient    = &SlackClientMock{}
	_ interfaces.IssueTracker   = &IssueTrackerMock{}
	_ interfaces.SettingsStore  = &SettingsStoreMock{}
	_ interfaces.ReleaseUseCase = &ReleaseUseCaseMock{}
	_ interfaces.DeployUseCase  = &DeployUseCaseMock{}
	_ interfaces.CommandUseCase = &CommandUseCaseMock{}
)

// GitHubClientMock is a mock implementation of interfaces.GitHubClient.
type GitHubClientMock struct {
	// CreateWebhookFunc mocks the CreateWebhook method.
	CreateWebhookFunc func(ctx context.Context, owner string, repo string) (string, error)

	// DispatchWorkflowFunc mocks the DispatchWorkflow method.
	DispatchWorkflowFunc func(ctx context.Context, owner string, repo string, workflowID string, tag string) error

	// GetLatestRunFunc mocks the GetLatestRun method.
	GetLatestRunFunc func(ctx context.Context, owner string, repo string, workflowID string) (*model.WorkflowRun, error)

	// calls tracks calls to the methods.
	calls struct {
		// CreateWebhook holds details about calls to the CreateWebhook method.
		CreateWebhook []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Owner is the owner argument value.
			Owner string
			// Repo is the repo argument value.
			Repo string
		}
		// DispatchWorkflow holds details about calls to the DispatchWorkflow method.
		DispatchWorkflow []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Owner is the owner argument value.
			Owner string
			// Repo is the repo argument value.
			Repo string
			// WorkflowID is the workflowID argument value.
			WorkflowID string
			// Tag is the tag argument value.
			Tag string
		}
		// GetLatestRun holds details about calls to the GetLatestRun method.
		GetLatestRun []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Owner is the owner argument value.
			Owner string
			// Repo is the repo argument value.
			Repo string
			// WorkflowID is the workflowID argument value.
			WorkflowID string
		}
	}
	lockCreateWebhook    sync.RWMutex
	lockDispatchWorkflow sync.RWMutex
	lockGetLatestRun     sync.RWMutex
}

// CreateWebhook calls CreateWebhookFunc.
func (mock *GitHubClientMock) CreateWebhook(ctx context.Context, owner string, repo string) (string, error) {
	callInfo := struct {
		Ctx   context.Context
		Owner string
		Repo  string
	}{
		Ctx:   ctx,
		Owner: owner,
		Repo:  repo,
	}
	mock.lockCreateWebhook.Lock()
	mock.calls.CreateWebhook = append(mock.calls.CreateWebhook, callInfo)
	mock.lockCreateWebhook.Unlock()
	if mock.CreateWebhookFunc == nil {
		return "", nil
	}
	return mock.CreateWebhookFunc(ctx, owner, repo)
}

// CreateWebhookCalls gets all the calls that were made to CreateWebhook.
// Check the length with:
//
//	len(mockedGitHubClient.CreateWebhookCalls())
func (mock *GitHubClientMock) CreateWebhookCalls() []struct {
	Ctx   context.Context
	Owner string
	Repo  string
} {
	var calls []struct {
		Ctx   context.Context
		Owner string
		Repo  string
	}
	mock.lockCreateWebhook.RLock()
	calls = mock.calls.CreateWebhook
	mock.lockCreateWebhook.RUnlock()
	return calls
}

// DispatchWorkflow calls DispatchWorkflowFunc.
func (mock *GitHubClientMock) DispatchWorkflow(ctx context.Context, owner string, repo string, workflowID string, tag string) error {
	callInfo := struct {
		Ctx        context.Context
		Owner      string
		Repo       string
		WorkflowID string
		Tag        string
	}{
		Ctx:        ctx,
		Owner:      owner,
		Repo:       repo,
		WorkflowID: workflowID,
		Tag:        tag,
	}
	mock.lockDispatchWorkflow.Lock()
	mock.calls.DispatchWorkflow = append(mock.calls.DispatchWorkflow, callInfo)
	mock.lockDispatchWorkflow.Unlock()
	if mock.DispatchWorkflowFunc == nil {
		return nil
	}
	return mock.DispatchWorkflowFunc(ctx, owner, repo, workflowID, tag)
}

// DispatchWorkflowCalls gets all the calls that were made to DispatchWorkflow.
// Check the length with:
//
//	len(mockedGitHubClient.DispatchWorkflowCalls())
func (mock *GitHubClientMock) DispatchWorkflowCalls() []struct {
	Ctx        context.Context
	Owner      string
	Repo       string
	WorkflowID string
	Tag        string
} {
	var calls []struct {
		Ctx        context.Context
		Owner      string
		Repo       string
		WorkflowID string
		Tag        string
	}
	mock.lockDispatchWorkflow.RLock()
	calls = mock.calls.DispatchWorkflow
	mock.lockDispatchWorkflow.RUnlock()
	return calls
}

// GetLatestRun calls GetLatestRunFunc.
func (mock *GitHubClientMock) GetLatestRun(ctx context.Context, owner string, repo string, workflowID string) (*model.WorkflowRun, error) {
	callInfo := struct {
		Ctx        context.Context
		Owner      string
		Repo       string
		WorkflowID string
	}{
		Ctx:        ctx,
		Owner:      owner,
		Repo:       repo,
		WorkflowID: workflowID,
	}
	mock.lockGetLatestRun.Lock()
	mock.calls.GetLatestRun = append(mock.calls.GetLatestRun, callInfo)
	mock.lockGetLatestRun.Unlock()
	if mock.GetLatestRunFunc == nil {
		return nil, nil
	}
	return mock.GetLatestRunFunc(ctx, owner, repo, workflowID)
}

// GetLatestRunCalls gets all the calls that were made to GetLatestRun.
// Check the length with:
//
//	len(mockedGitHubClient.GetLatestRunCalls())
func (mock *GitHubClientMock) GetLatestRunCalls() []struct {
	Ctx        context.Context
	Owner      string
	Repo       string
	WorkflowID string
} {
	var calls []struct {
		Ctx        context.Context
		Owner      string
		Repo       string
		WorkflowID string
	}
	mock.lockGetLatestRun.RLock()
	calls = mock.calls.GetLatestRun
	mock.lockGetLatestRun.RUnlock()
	return calls
}

// SlackClientMock is a mock implementation of interfaces.SlackClient.
type SlackClientMock struct {
	// ListBotChannelsFunc mocks the ListBotChannels method.
	ListBotChannelsFunc func(ctx context.Context) ([]*model.Channel, error)

	// PostMessageFunc mocks the PostMessage method.
	PostMessageFunc func(ctx context.Context, channelID string, msg *model.Message) (string, error)

	// PostEphemeralFunc mocks the PostEphemeral method.
	PostEphemeralFunc func(ctx context.Context, channelID string, userID string, msg *model.Message) error

	// RespondFunc mocks the Respond method.
	RespondFunc func(ctx context.Context, responseURL string, reply *model.CommandReply) error

	// calls tracks calls to the methods.
	calls struct {
		// ListBotChannels holds details about calls to the ListBotChannels method.
		ListBotChannels []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
		}
		// PostMessage holds details about calls to the PostMessage method.
		PostMessage []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// ChannelID is the channelID argument value.
			ChannelID string
			// Msg is the msg argument value.
			Msg *model.Message
		}
		// PostEphemeral holds details about calls to the PostEphemeral method.
		PostEphemeral []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// ChannelID is the channelID argument value.
			ChannelID string
			// UserID is the userID argument value.
			UserID string
			// Msg is the msg argument value.
			Msg *model.Message
		}
		// Respond holds details about calls to the Respond method.
		Respond []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// ResponseURL is the responseURL argument value.
			ResponseURL string
			// Reply is the reply argument value.
			Reply *model.CommandReply
		}
	}
	lockListBotChannels sync.RWMutex
	lockPostMessage     sync.RWMutex
	lockPostEphemeral   sync.RWMutex
	lockRespond         sync.RWMutex
}

// ListBotChannels calls ListBotChannelsFunc.
func (mock *SlackClientMock) ListBotChannels(ctx context.Context) ([]*model.Channel, error) {
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListBotChannels.Lock()
	mock.calls.ListBotChannels = append(mock.calls.ListBotChannels, callInfo)
	mock.lockListBotChannels.Unlock()
	if mock.ListBotChannelsFunc == nil {
		return nil, nil
	}
	return mock.ListBotChannelsFunc(ctx)
}

// ListBotChannelsCalls gets all the calls that were made to ListBotChannels.
// Check the length with:
//
//	len(mockedSlackClient.ListBotChannelsCalls())
func (mock *SlackClientMock) ListBotChannelsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListBotChannels.RLock()
	calls = mock.calls.ListBotChannels
	mock.lockListBotChannels.RUnlock()
	return calls
}

// PostMessage calls PostMessageFunc.
func (mock *SlackClientMock) PostMessage(ctx context.Context, channelID string, msg *model.Message) (string, error) {
	callInfo := struct {
		Ctx       context.Context
		ChannelID string
		Msg       *model.Message
	}{
		Ctx:       ctx,
		ChannelID: channelID,
		Msg:       msg,
	}
	mock.lockPostMessage.Lock()
	mock.calls.PostMessage = append(mock.calls.PostMessage, callInfo)
	mock.lockPostMessage.Unlock()
	if mock.PostMessageFunc == nil {
		return "", nil
	}
	return mock.PostMessageFunc(ctx, channelID, msg)
}

// PostMessageCalls gets all the calls that were made to PostMessage.
// Check the length with:
//
//	len(mockedSlackClient.PostMessageCalls())
func (mock *SlackClientMock) PostMessageCalls() []struct {
	Ctx       context.Context
	ChannelID string
	Msg       *model.Message
} {
	var calls []struct {
		Ctx       context.Context
		ChannelID string
		Msg       *model.Message
	}
	mock.lockPostMessage.RLock()
	calls = mock.calls.PostMessage
	mock.lockPostMessage.RUnlock()
	return calls
}

// PostEphemeral calls PostEphemeralFunc.
func (mock *SlackClientMock) PostEphemeral(ctx context.Context, channelID string, userID string, msg *model.Message) error {
	callInfo := struct {
		Ctx       context.Context
		ChannelID string
		UserID    string
		Msg       *model.Message
	}{
		Ctx:       ctx,
		ChannelID: channelID,
		UserID:    userID,
		Msg:       msg,
	}
	mock.lockPostEphemeral.Lock()
	mock.calls.PostEphemeral = append(mock.calls.PostEphemeral, callInfo)
	mock.lockPostEphemeral.Unlock()
	if mock.PostEphemeralFunc == nil {
		return nil
	}
	return mock.PostEphemeralFunc(ctx, channelID, userID, msg)
}

// PostEphemeralCalls gets all the calls that were made to PostEphemeral.
// Check the length with:
//
//	len(mockedSlackClient.PostEphemeralCalls())
func (mock *SlackClientMock) PostEphemeralCalls() []struct {
	Ctx       context.Context
	ChannelID string
	UserID    string
	Msg       *model.Message
} {
	var calls []struct {
		Ctx       context.Context
		ChannelID string
		UserID    string
		Msg       *model.Message
	}
	mock.lockPostEphemeral.RLock()
	calls = mock.calls.PostEphemeral
	mock.lockPostEphemeral.RUnlock()
	return calls
}

// Respond calls RespondFunc.
func (mock *SlackClientMock) Respond(ctx context.Context, responseURL string, reply *model.CommandReply) error {
	callInfo := struct {
		Ctx         context.Context
		ResponseURL string
		Reply       *model.CommandReply
	}{
		Ctx:         ctx,
		ResponseURL: responseURL,
		Reply:       reply,
	}
	mock.lockRespond.Lock()
	mock.calls.Respond = append(mock.calls.Respond, callInfo)
	mock.lockRespond.Unlock()
	if mock.RespondFunc == nil {
		return nil
	}
	return mock.RespondFunc(ctx, responseURL, reply)
}

// RespondCalls gets all the calls that were made to Respond.
// Check the length with:
//
//	len(mockedSlackClient.RespondCalls())
func (mock *SlackClientMock) RespondCalls() []struct {
	Ctx         context.Context
	ResponseURL string
	Reply       *model.CommandReply
} {
	var calls []struct {
		Ctx         context.Context
		ResponseURL string
		Reply       *model.CommandReply
	}
	mock.lockRespond.RLock()
	calls = mock.calls.Respond
	mock.lockRespond.RUnlock()
	return calls
}

// IssueTrackerMock is a mock implementation of interfaces.IssueTracker.
type IssueTrackerMock struct {
	// GetIssueFunc mocks the GetIssue method.
	GetIssueFunc func(ctx context.Context, key model.IssueReference) (*model.ResolvedIssue, error)

	// calls tracks calls to the methods.
	calls struct {
		// GetIssue holds details about calls to the GetIssue method.
		GetIssue []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Key is the key argument value.
			Key model.IssueReference
		}
	}
	lockGetIssue sync.RWMutex
}

// GetIssue calls GetIssueFunc.
func (mock *IssueTrackerMock) GetIssue(ctx context.Context, key model.IssueReference) (*model.ResolvedIssue, error) {
	callInfo := struct {
		Ctx context.Context
		Key model.IssueReference
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGetIssue.Lock()
	mock.calls.GetIssue = append(mock.calls.GetIssue, callInfo)
	mock.lockGetIssue.Unlock()
	if mock.GetIssueFunc == nil {
		return nil, nil
	}
	return mock.GetIssueFunc(ctx, key)
}

// GetIssueCalls gets all the calls that were made to GetIssue.
// Check the length with:
//
//	len(mockedIssueTracker.GetIssueCalls())
func (mock *IssueTrackerMock) GetIssueCalls() []struct {
	Ctx context.Context
	Key model.IssueReference
} {
	var calls []struct {
		Ctx context.Context
		Key model.IssueReference
	}
	mock.lockGetIssue.RLock()
	calls = mock.calls.GetIssue
	mock.lockGetIssue.RUnlock()
	return calls
}

// SettingsStoreMock is a mock implementation of interfaces.SettingsStore.
type SettingsStoreMock struct {
	// GetFunc mocks the Get method.
	GetFunc func(ctx context.Context, name string) (*model.RepositorySettings, error)

	// PutFunc mocks the Put method.
	PutFunc func(ctx context.Context, settings *model.RepositorySettings) error

	// calls tracks calls to the methods.
	calls struct {
		// Get holds details about calls to the Get method.
		Get []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Name is the name argument value.
			Name string
		}
		// Put holds details about calls to the Put method.
		Put []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Settings is the settings argument value.
			Settings *model.RepositorySettings
		}
	}
	lockGet sync.RWMutex
	lockPut sync.RWMutex
}

// Get calls GetFunc.
func (mock *SettingsStoreMock) Get(ctx context.Context, name string) (*model.RepositorySettings, error) {
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{
		Ctx:  ctx,
		Name: name,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	if mock.GetFunc == nil {
		return nil, nil
	}
	return mock.GetFunc(ctx, name)
}

// GetCalls gets all the calls that were made to Get.
// Check the length with:
//
//	len(mockedSettingsStore.GetCalls())
func (mock *SettingsStoreMock) GetCalls() []struct {
	Ctx  context.Context
	Name string
} {
	var calls []struct {
		Ctx  context.Context
		Name string
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

// Put calls PutFunc.
func (mock *SettingsStoreMock) Put(ctx context.Context, settings *model.RepositorySettings) error {
	callInfo := struct {
		Ctx      context.Context
		Settings *model.RepositorySettings
	}{
		Ctx:      ctx,
		Settings: settings,
	}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	if mock.PutFunc == nil {
		return nil
	}
	return mock.PutFunc(ctx, settings)
}

// PutCalls gets all the calls that were made to Put.
// Check the length with:
//
//	len(mockedSettingsStore.PutCalls())
func (mock *SettingsStoreMock) PutCalls() []struct {
	Ctx      context.Context
	Settings *model.RepositorySettings
} {
	var calls []struct {
		Ctx      context.Context
		Settings *model.RepositorySettings
	}
	mock.lockPut.RLock()
	calls = mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}

// ReleaseUseCaseMock is a mock implementation of interfaces.ReleaseUseCase.
type ReleaseUseCaseMock struct {
	// AnnounceFunc mocks the Announce method.
	AnnounceFunc func(ctx context.Context, event *model.ReleaseEvent) (*model.FanoutResult, error)

	// calls tracks calls to the methods.
	calls struct {
		// Announce holds details about calls to the Announce method.
		Announce []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Event is the event argument value.
			Event *model.ReleaseEvent
		}
	}
	lockAnnounce sync.RWMutex
}

// Announce calls AnnounceFunc.
func (mock *ReleaseUseCaseMock) Announce(ctx context.Context, event *model.ReleaseEvent) (*model.FanoutResult, error) {
	callInfo := struct {
		Ctx   context.Context
		Event *model.ReleaseEvent
	}{
		Ctx:   ctx,
		Event: event,
	}
	mock.lockAnnounce.Lock()
	mock.calls.Announce = append(mock.calls.Announce, callInfo)
	mock.lockAnnounce.Unlock()
	if mock.AnnounceFunc == nil {
		return &model.FanoutResult{}, nil
	}
	return mock.AnnounceFunc(ctx, event)
}

// AnnounceCalls gets all the calls that were made to Announce.
// Check the length with:
//
//	len(mockedReleaseUseCase.AnnounceCalls())
func (mock *ReleaseUseCaseMock) AnnounceCalls() []struct {
	Ctx   context.Context
	Event *model.ReleaseEvent
} {
	var calls []struct {
		Ctx   context.Context
		Event *model.ReleaseEvent
	}
	mock.lockAnnounce.RLock()
	calls = mock.calls.Announce
	mock.lockAnnounce.RUnlock()
	return calls
}

// DeployUseCaseMock is a mock implementation of interfaces.DeployUseCase.
type DeployUseCaseMock struct {
	// DeployFunc mocks the Deploy method.
	DeployFunc func(ctx context.Context, req *model.DeployRequest) (*model.DeployRun, error)

	// calls tracks calls to the methods.
	calls struct {
		// Deploy holds details about calls to the Deploy method.
		Deploy []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Req is the req argument value.
			Req *model.DeployRequest
		}
	}
	lockDeploy sync.RWMutex
}

// Deploy calls DeployFunc.
func (mock *DeployUseCaseMock) Deploy(ctx context.Context, req *model.DeployRequest) (*model.DeployRun, error) {
	callInfo := struct {
		Ctx context.Context
		Req *model.DeployRequest
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockDeploy.Lock()
	mock.calls.Deploy = append(mock.calls.Deploy, callInfo)
	mock.lockDeploy.Unlock()
	if mock.DeployFunc == nil {
		return nil, nil
	}
	return mock.DeployFunc(ctx, req)
}

// DeployCalls gets all the calls that were made to Deploy.
// Check the length with:
//
//	len(mockedDeployUseCase.DeployCalls())
func (mock *DeployUseCaseMock) DeployCalls() []struct {
	Ctx context.Context
	Req *model.DeployRequest
} {
	var calls []struct {
		Ctx context.Context
		Req *model.DeployRequest
	}
	mock.lockDeploy.RLock()
	calls = mock.calls.Deploy
	mock.lockDeploy.RUnlock()
	return calls
}

// CommandUseCaseMock is a mock implementation of interfaces.CommandUseCase.
type CommandUseCaseMock struct {
	// HandleCommandFunc mocks the HandleCommand method.
	HandleCommandFunc func(ctx context.Context, cmd *model.SlashCommand) (*model.CommandReply, error)

	// calls tracks calls to the methods.
	calls struct {
		// HandleCommand holds details about calls to the HandleCommand method.
		HandleCommand []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Cmd is the cmd argument value.
			Cmd *model.SlashCommand
		}
	}
	lockHandleCommand sync.RWMutex
}

// HandleCommand calls HandleCommandFunc.
func (mock *CommandUseCaseMock) HandleCommand(ctx context.Context, cmd *model.SlashCommand) (*model.CommandReply, error) {
	callInfo := struct {
		Ctx context.Context
		Cmd *model.SlashCommand
	}{
		Ctx: ctx,
		Cmd: cmd,
	}
	mock.lockHandleCommand.Lock()
	mock.calls.HandleCommand = append(mock.calls.HandleCommand, callInfo)
	mock.lockHandleCommand.Unlock()
	if mock.HandleCommandFunc == nil {
		return &model.CommandReply{}, nil
	}
	return mock.HandleCommandFunc(ctx, cmd)
}

// HandleCommandCalls gets all the calls that were made to HandleCommand.
// Check the length with:
//
//	len(mockedCommandUseCase.HandleCommandCalls())
func (mock *CommandUseCaseMock) HandleCommandCalls() []struct {
	Ctx context.Context
	Cmd *model.SlashCommand
} {
	var calls []struct {
		Ctx context.Context
		Cmd *model.SlashCommand
	}
	mock.lockHandleCommand.RLock()
	calls = mock.calls.HandleCommand
	mock.lockHandleCommand.RUnlock()
	return calls
}
