package domain

type Platform string

const (
	PlatformTwitch Platform = "twitch"
	PlatformKick   Platform = "kick"
	// PlatformWeb covers messages typed in the bot's own web chat (/ws/chat).
	PlatformWeb Platform = "web"
)

type Message struct {
	Platform  Platform
	ChannelID string
	UserID    string
	Username  string
	Text      string
	IsPrivate bool

	// Filled in by each adapter from the platform badges.
	IsPlatformOwner bool
	IsPlatformAdmin bool
	IsPlatformMod   bool
	IsPlatformVip   bool
}
