package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeRelease WebhookEventType = "release"
	EventTypeUnknown WebhookEventType = "unknown"
)

// ReleaseActionReleased is the only release action that triggers an announcement.
// Pre-release publication and edits are ignored.
const ReleaseActionReleased = "released"

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., released, prereleased)
	Repository string           // Repository full name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	Payload    any              // Payload parsed by go-github, nil if unrecognized
}

// IsSupportedEvent checks if the event is supported
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypeRelease:
		return e.Action == ReleaseActionReleased
	default:
		return false
	}
}
