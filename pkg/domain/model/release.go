package model

// Repository is the subset of a GitHub repository needed for announcements
type Repository struct {
	Name    string
	HTMLURL string
}

// Release is the subset of a GitHub release needed for announcements
type Release struct {
	Name    string
	TagName string
	HTMLURL string
	URL     string
	Body    string
}

// ReleaseEvent is a published release, consumed once per webhook delivery
type ReleaseEvent struct {
	Repository Repository
	Release    Release
}

// Channel is a chat channel the bot is a member of
type Channel struct {
	ID   string
	Name string
}

// FanoutResult collects the outcome of delivering one announcement to every channel
type FanoutResult struct {
	Channels  int
	Delivered int
	Failed    map[string]error // keyed by channel ID
}
