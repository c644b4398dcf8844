package model

import "github.com/slack-go/slack"

// Message is a chat message ready to be posted
type Message struct {
	Text     string        // Fallback text for notifications
	Blocks   []slack.Block // Block Kit layout, optional
	ThreadTS string        // Parent message timestamp when replying in a thread
}

// Announcement is the message set built for one release
type Announcement struct {
	Message  *Message
	FollowUp *Message // Deploy button, threaded to Message. Nil without a workflow.
	Issues   []*ResolvedIssue
}
