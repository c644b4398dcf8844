package interfaces

import (
	"context"

	"github.com/m-mizutani/buffet/pkg/domain/model"
)

// IssueTracker fetches issues from the issue tracker
type IssueTracker interface {
	GetIssue(ctx context.Context, key model.IssueReference) (*model.ResolvedIssue, error)
}
