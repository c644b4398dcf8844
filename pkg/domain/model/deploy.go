package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ActionIDDeployRelease is the interaction action ID of the Deploy button
const ActionIDDeployRelease = "deploy_release"

const deployActionSeparator = "|"

// DeployAction is the payload bound to a Deploy button
type DeployAction struct {
	RepositoryName string
	TagName        string
}

// Value encodes the action as a button value
func (a DeployAction) Value() string {
	return a.RepositoryName + deployActionSeparator + a.TagName
}

// ParseDeployAction decodes a button value created by Value
func ParseDeployAction(value string) (*DeployAction, error) {
	repo, tag, ok := strings.Cut(value, deployActionSeparator)
	if !ok || repo == "" || tag == "" {
		return nil, goerr.New("invalid deploy action value", goerr.V("value", value))
	}
	return &DeployAction{RepositoryName: repo, TagName: tag}, nil
}

// DeployRequest is a user-initiated deploy from a chat action
type DeployRequest struct {
	Action    DeployAction
	UserID    string
	ChannelID string
	ThreadTS  string
}

// WorkflowRun is the subset of a CI run record reported back to chat
type WorkflowRun struct {
	ID      int64
	Status  string
	HTMLURL string
}

// DeployState is a step of the deploy workflow
type DeployState string

const (
	DeployStateValidating   DeployState = "validating"
	DeployStateRejected     DeployState = "rejected"
	DeployStateTriggering   DeployState = "triggering"
	DeployStateFailed       DeployState = "failed"
	DeployStateAcknowledged DeployState = "acknowledged"
	DeployStateReconciling  DeployState = "reconciling"
	DeployStateReported     DeployState = "reported"
)

var deployTransitions = map[DeployState][]DeployState{
	DeployStateValidating:   {DeployStateRejected, DeployStateTriggering},
	DeployStateTriggering:   {DeployStateFailed, DeployStateAcknowledged},
	DeployStateAcknowledged: {DeployStateReconciling},
	DeployStateReconciling:  {DeployStateReported},
}

// CanTransitionTo reports whether next is a valid successor of s
func (s DeployState) CanTransitionTo(next DeployState) bool {
	for _, candidate := range deployTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition exists
func (s DeployState) IsTerminal() bool {
	return len(deployTransitions[s]) == 0
}

// DeployRun tracks a single deploy workflow execution
type DeployRun struct {
	ID      string
	Request *DeployRequest
	State   DeployState
	Run     *WorkflowRun // Set by reconciliation when the run could be found
}

// NewDeployRun creates a run in the validating state
func NewDeployRun(id string, req *DeployRequest) *DeployRun {
	return &DeployRun{
		ID:      id,
		Request: req,
		State:   DeployStateValidating,
	}
}

// Transition moves the run to next, refusing transitions the workflow does not define
func (r *DeployRun) Transition(next DeployState) error {
	if !r.State.CanTransitionTo(next) {
		return goerr.New("invalid deploy state transition",
			goerr.V("id", r.ID),
			goerr.V("from", r.State),
			goerr.V("to", next),
		)
	}
	r.State = next
	return nil
}
