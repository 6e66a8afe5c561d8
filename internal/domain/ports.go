package domain

import "context"

type OutgoingMessagePort interface {
	SendMessage(ctx context.Context, platform Platform, channelID, text string) error
}

// PluginSettingsRepository persists the configuration overrides of a chat
// plugin. Keys and values are opaque to the repository.
type PluginSettingsRepository interface {
	ListPluginSettings(ctx context.Context, plugin string) (map[string]string, error)
	ReplacePluginSettings(ctx context.Context, plugin string, values map[string]string) error
	DeletePluginSettings(ctx context.Context, plugin string) error
}
