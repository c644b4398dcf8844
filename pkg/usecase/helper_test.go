package usecase_test

import (
	"strings"

	"github.com/m-mizutani/buffet/pkg/domain/model"
	"github.com/slack-go/slack"
)

// blockText joins the text of every section block and the values of every button
func blockText(msg *model.Message) string {
	var parts []string
	for _, block := range msg.Blocks {
		switch b := block.(type) {
		case *slack.SectionBlock:
			if b.Text != nil {
				parts = append(parts, b.Text.Text)
			}
		case *slack.ActionBlock:
			for _, elem := range b.Elements.ElementSet {
				if button, ok := elem.(*slack.ButtonBlockElement); ok {
					parts = append(parts, button.ActionID+"="+button.Value)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}

func newReleaseEvent() *model.ReleaseEvent {
	return &model.ReleaseEvent{
		Repository: model.Repository{
			Name:    "buffet",
			HTMLURL: "https://x/buffet",
		},
		Release: model.Release{
			Name:    "v1",
			TagName: "v1.0",
			HTMLURL: "https://x/r/v1",
			URL:     "https://x/r/v1",
			Body:    "Fixes EX-12 and EX-13",
		},
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
