package usecase

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/m-mizutani/buffet/pkg/domain/interfaces"
	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"golang.org/x/sync/errgroup"
)

// ExtractIssueReferences finds every "<projectKey>-<digits>" key in text.
// The project key match is case sensitive. Result is deduplicated and sorted.
func ExtractIssueReferences(text, projectKey string) []model.IssueReference {
	if projectKey == "" || text == "" {
		return nil
	}

	pattern := regexp.MustCompile(regexp.QuoteMeta(projectKey) + `-\d+`)
	matches := pattern.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	refs := make([]model.IssueReference, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		refs = append(refs, model.IssueReference(m))
	}
	slices.Sort(refs)

	return refs
}

// IssueLookup resolves issue keys against the tracker
type IssueLookup struct {
	tracker interfaces.IssueTracker
}

// NewIssueLookup creates an IssueLookup. A nil tracker resolves nothing.
func NewIssueLookup(tracker interfaces.IssueTracker) *IssueLookup {
	return &IssueLookup{tracker: tracker}
}

// Resolve fetches all keys concurrently. Keys that fail to resolve are
// dropped from the result instead of failing the batch.
func (x *IssueLookup) Resolve(ctx context.Context, keys []model.IssueReference) []*model.ResolvedIssue {
	if x.tracker == nil || len(keys) == 0 {
		return nil
	}
	logger := ctxlog.From(ctx)

	var (
		mu       sync.Mutex
		resolved []*model.ResolvedIssue
		eg       errgroup.Group
	)

	for _, key := range keys {
		eg.Go(func() error {
			issue, err := x.tracker.GetIssue(ctx, key)
			if err != nil {
				logger.Warn("Failed to resolve issue", "key", key, "error", err)
				return nil
			}
			if issue == nil {
				logger.Debug("Issue not found", "key", key)
				return nil
			}

			mu.Lock()
			resolved = append(resolved, issue)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	slices.SortFunc(resolved, func(a, b *model.ResolvedIssue) int {
		return strings.Compare(a.Key, b.Key)
	})

	logger.Debug("Resolved issues", "requested", len(keys), "resolved", len(resolved))
	return resolved
}
