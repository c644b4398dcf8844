package model

// SlashCommand is an inbound chat command
type SlashCommand struct {
	Command   string // e.g. "/buffet"
	Text      string // Arguments after the command
	UserID    string
	ChannelID string
}

// CommandReply is the synchronous answer to a slash command
type CommandReply struct {
	Text      string
	InChannel bool // Visible to the whole channel instead of the requester only
}
