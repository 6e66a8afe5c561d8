package commands

import (
	"context"
	"log"
	"strings"

	"esbBot/internal/domain"
)

const (
	msgUnknownCommand     = "Commande inconnue"
	msgUnsupportedCommand = "Cette commande n'est pas disponible ici."
	// MsgCommandFailed answers a command whose handler returned an error.
	MsgCommandFailed = "Erreur : la commande a échoué, consultez les journaux du bot"
)

// Outcomes reported to the Observer.
const (
	OutcomeOK          = "ok"
	OutcomeUnknown     = "unknown_command"
	OutcomeUnsupported = "unsupported_platform"
	OutcomeFailed      = "failed"
)

// Observer is told about every message that reached a command lookup.
type Observer func(msg domain.Message, command string, argCount int, outcome string)

type Router struct {
	prefix   string
	cmdIndex map[string]Command
	observer Observer
}

func NewRouter(prefix string) *Router {
	if prefix == "" {
		prefix = "!"
	}
	return &Router{
		prefix:   prefix,
		cmdIndex: make(map[string]Command),
	}
}

func (r *Router) Register(cmd Command) {
	r.cmdIndex[strings.ToLower(cmd.Name())] = cmd
	for _, alias := range cmd.Aliases() {
		r.cmdIndex[strings.ToLower(alias)] = cmd
	}
}

// SetObserver must be called before the router starts handling messages.
func (r *Router) SetObserver(o Observer) {
	r.observer = o
}

func (r *Router) notify(msg domain.Message, command string, argCount int, outcome string) {
	if r.observer != nil {
		r.observer(msg, command, argCount, outcome)
	}
}

func (r *Router) Prefix() string {
	return r.prefix
}

func (r *Router) Handle(ctx context.Context, msg domain.Message, out domain.OutgoingMessagePort) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if !strings.HasPrefix(text, r.prefix) {
		return nil
	}

	withoutPrefix := strings.TrimPrefix(text, r.prefix)
	parts := strings.Fields(withoutPrefix)
	if len(parts) == 0 {
		return nil
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := r.cmdIndex[cmdName]
	if !ok {
		r.notify(msg, cmdName, len(args), OutcomeUnknown)
		return out.SendMessage(ctx, msg.Platform, msg.ChannelID, msgUnknownCommand)
	}

	if !cmd.SupportsPlatform(msg.Platform) {
		r.notify(msg, cmdName, len(args), OutcomeUnsupported)
		return out.SendMessage(ctx, msg.Platform, msg.ChannelID, msgUnsupportedCommand)
	}

	ctxCmd := &Context{
		Message: msg,
		Out:     out,
		Raw:     withoutPrefix,
		Args:    args,
	}

	if err := cmd.Handle(ctx, ctxCmd); err != nil {
		log.Printf("router: %s from %s/%s failed: %v", cmdName, msg.Platform, msg.Username, err)
		r.notify(msg, cmdName, len(args), OutcomeFailed)
		return out.SendMessage(ctx, msg.Platform, msg.ChannelID, MsgCommandFailed)
	}
	r.notify(msg, cmdName, len(args), OutcomeOK)
	return nil
}
