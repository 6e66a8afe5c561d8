package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"esbBot/internal/domain"
	"esbBot/internal/usecase/esbconfig"
)

// ConfigManager is the part of esbconfig.Manager the chat command needs.
type ConfigManager interface {
	Redacted() esbconfig.Config
	Configure(ctx context.Context, overrides map[string]string) error
	Reset(ctx context.Context) error
}

// EsbConfigCommand shows or changes the esb configuration from chat.
// Restricted to platform admins.
type EsbConfigCommand struct {
	manager ConfigManager
}

func NewEsbConfigCommand(manager ConfigManager) *EsbConfigCommand {
	return &EsbConfigCommand{manager: manager}
}

func (c *EsbConfigCommand) Name() string {
	return "esbconfig"
}

func (c *EsbConfigCommand) Aliases() []string {
	return []string{}
}

func (c *EsbConfigCommand) SupportsPlatform(domain.Platform) bool {
	return true
}

func (c *EsbConfigCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if c.manager == nil {
		return nil
	}
	if !cmdCtx.Message.IsPlatformAdmin {
		return nil
	}

	if len(cmdCtx.Args) == 0 {
		return cmdCtx.Reply(ctx, formatConfig(c.manager.Redacted()))
	}

	if len(cmdCtx.Args) == 1 && strings.EqualFold(cmdCtx.Args[0], "reset") {
		if err := c.manager.Reset(ctx); err != nil {
			return err
		}
		return cmdCtx.Reply(ctx, "✅ Configuration esb réinitialisée.")
	}

	overrides, ok := parseAssignments(cmdCtx.Args)
	if !ok {
		return c.usage(ctx, cmdCtx)
	}

	if err := c.manager.Configure(ctx, overrides); err != nil {
		var verr *esbconfig.ValidationError
		if errors.As(err, &verr) {
			return cmdCtx.Reply(ctx, "Erreur : "+verr.Error())
		}
		return err
	}

	return cmdCtx.Reply(ctx, fmt.Sprintf("✅ Configuration esb mise à jour (%d clé(s)).", len(overrides)))
}

func (c *EsbConfigCommand) usage(ctx context.Context, cmdCtx *Context) error {
	return cmdCtx.Reply(ctx, "Usage : !esbconfig | !esbconfig CLE=valeur [CLE=valeur...] | !esbconfig reset")
}

// parseAssignments reads KEY=value tokens. Values may be empty.
func parseAssignments(args []string) (map[string]string, bool) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, false
		}
		out[key] = value
	}
	return out, true
}

func formatConfig(cfg esbconfig.Config) string {
	lines := make([]string, 0, len(cfg))
	for _, key := range esbconfig.KnownKeys() {
		lines = append(lines, fmt.Sprintf("%s = %s", key, cfg.Get(key)))
	}
	return strings.Join(lines, "\n")
}
