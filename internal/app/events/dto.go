package events

import (
	"time"

	"esbBot/internal/domain"
)

// CommandHandled is published once per routed command. Arguments are not
// carried: esbconfig arguments may hold the client secret.
type CommandHandled struct {
	Platform  string `json:"platform"`
	ChannelID string `json:"channel_id"`
	Username  string `json:"username"`
	Command   string `json:"command"`
	ArgCount  int    `json:"arg_count"`
	Outcome   string `json:"outcome"`
	Timestamp string `json:"timestamp"`
}

func NewCommandHandled(msg domain.Message, command string, argCount int, outcome string) CommandHandled {
	return CommandHandled{
		Platform:  string(msg.Platform),
		ChannelID: msg.ChannelID,
		Username:  msg.Username,
		Command:   command,
		ArgCount:  argCount,
		Outcome:   outcome,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// ConfigChanged is published after the esb configuration was replaced.
// Only key names travel, never values.
type ConfigChanged struct {
	Keys      []string `json:"keys,omitempty"`
	Reset     bool     `json:"reset"`
	Timestamp string   `json:"timestamp"`
}

func NewConfigChanged(keys []string, reset bool) ConfigChanged {
	return ConfigChanged{
		Keys:      keys,
		Reset:     reset,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
