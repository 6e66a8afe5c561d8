// Package handle_message connects the chat adapters to the command router.
package handle_message

import (
	"context"

	"esbBot/internal/domain"
	"esbBot/internal/usecase/commands"
)

type Interactor struct {
	router *commands.Router
	out    domain.OutgoingMessagePort
}

func NewInteractor(out domain.OutgoingMessagePort, router *commands.Router) *Interactor {
	return &Interactor{
		router: router,
		out:    out,
	}
}

// Handle is the MessageHandler given to every adapter. Messages sent from a
// platform the bot cannot answer on are dropped.
func (uc *Interactor) Handle(ctx context.Context, msg domain.Message) error {
	if msg.Platform == "" {
		return nil
	}
	return uc.router.Handle(ctx, msg, uc.out)
}
