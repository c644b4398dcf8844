package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/slack-go/slack"
)

// NoIssuesFound is rendered when a release references no resolvable issue
const NoIssuesFound = "no issues found"

// Slack allows 3000 characters per section text and 50 blocks per message.
// 30 issues fit in 8 sections, so an announcement stays within 2+8+36 blocks.
const (
	maxSectionText         = 3000
	maxDescriptionSections = 35
	maxListedIssues        = 30
)

// Composer builds release announcements
type Composer struct {
	issues *IssueLookup
}

// NewComposer creates a Composer that enriches releases through issues
func NewComposer(issues *IssueLookup) *Composer {
	return &Composer{issues: issues}
}

// Compose builds the announcement for a release. It has no side effects
// other than tracker lookups; posting is left to the caller.
func (x *Composer) Compose(ctx context.Context, settings *model.RepositorySettings, repo *model.Repository, release *model.Release) *model.Announcement {
	var issues []*model.ResolvedIssue
	if settings.HasTracker() {
		refs := ExtractIssueReferences(release.Body, settings.TrackerProjectKey)
		issues = x.issues.Resolve(ctx, refs)
	}

	announcement := &model.Announcement{
		Message: &model.Message{
			Text:   fmt.Sprintf("%s just posted a new release: %s", repo.Name, release.HTMLURL),
			Blocks: releaseBlocks(repo, release, issues),
		},
		Issues: issues,
	}

	if settings.HasWorkflow() {
		action := model.DeployAction{RepositoryName: repo.Name, TagName: release.TagName}
		announcement.FollowUp = &model.Message{
			Text:   fmt.Sprintf("Deploy %s %s", repo.Name, release.TagName),
			Blocks: deployBlocks(action),
		}
	}

	return announcement
}

func releaseBlocks(repo *model.Repository, release *model.Release, issues []*model.ResolvedIssue) []slack.Block {
	lines := []string{
		"*Release info:*",
		fmt.Sprintf(":octopus: *Repo:* <%s|%s>", repo.HTMLURL, repo.Name),
		fmt.Sprintf(":label: *Tag:* <%s|%s - %s>", release.HTMLURL, release.Name, release.TagName),
		":jira: *Issues:*\n" + formatIssues(issues),
		":page_with_curl: *Description:*",
	}

	blocks := []slack.Block{
		markdownSection(":wave: *Buffet has detected a new release*"),
		slack.NewDividerBlock(),
	}
	for _, chunk := range splitText(strings.Join(lines, "\n"), maxSectionText) {
		blocks = append(blocks, markdownSection(chunk))
	}
	return append(blocks, descriptionBlocks(release)...)
}

// descriptionBlocks renders the raw release body over as many sections as
// needed. Bodies beyond maxDescriptionSections sections are cut with a link
// to the release.
func descriptionBlocks(release *model.Release) []slack.Block {
	// Slack rejects sections with empty text
	if strings.TrimSpace(release.Body) == "" {
		return []slack.Block{markdownSection("_No description_")}
	}

	chunks := splitText(release.Body, maxSectionText)
	truncated := len(chunks) > maxDescriptionSections
	if truncated {
		chunks = chunks[:maxDescriptionSections]
	}

	var blocks []slack.Block
	for _, chunk := range chunks {
		blocks = append(blocks, markdownSection(chunk))
	}
	if truncated {
		blocks = append(blocks, markdownSection(fmt.Sprintf("_Description truncated, see <%s|the release page>_", release.HTMLURL)))
	}
	return blocks
}

func formatIssues(issues []*model.ResolvedIssue) string {
	if len(issues) == 0 {
		return NoIssuesFound
	}

	listed := issues
	if len(listed) > maxListedIssues {
		listed = listed[:maxListedIssues]
	}

	items := make([]string, 0, len(listed)+1)
	for _, issue := range listed {
		label := issue.Key
		if issue.Summary != "" {
			label += " " + issue.Summary
		}
		items = append(items, fmt.Sprintf("• <%s|%s>", issue.URL, label))
	}
	if rest := len(issues) - len(listed); rest > 0 {
		items = append(items, fmt.Sprintf("• _and %d more_", rest))
	}
	return strings.Join(items, "\n")
}

// splitText cuts text into chunks of at most limit runes, preferring to cut
// after a newline in the second half of a chunk so links stay intact.
// Whitespace-only chunks are dropped.
func splitText(text string, limit int) []string {
	var chunks []string
	add := func(chunk string) {
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}

	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		add(string(runes[:cut]))
		runes = runes[cut:]
	}
	add(string(runes))
	return chunks
}

func deployBlocks(action model.DeployAction) []slack.Block {
	button := slack.NewButtonBlockElement(
		model.ActionIDDeployRelease,
		action.Value(),
		slack.NewTextBlockObject(slack.PlainTextType, "Deploy", false, false),
	).WithStyle(slack.StylePrimary)

	return []slack.Block{
		markdownSection(fmt.Sprintf("Deploy *%s* at `%s`?", action.RepositoryName, action.TagName)),
		slack.NewActionBlock("deploy", button),
	}
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}
