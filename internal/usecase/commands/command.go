package commands

import (
	"context"

	"esbBot/internal/domain"
)

type Command interface {
	Name() string
	Aliases() []string
	SupportsPlatform(p domain.Platform) bool
	Handle(ctx context.Context, c *Context) error
}

type Context struct {
	Message domain.Message
	Out     domain.OutgoingMessagePort

	Raw  string
	Args []string
}

// Reply answers in the channel the command came from.
func (c *Context) Reply(ctx context.Context, text string) error {
	return c.Out.SendMessage(ctx, c.Message.Platform, c.Message.ChannelID, text)
}
