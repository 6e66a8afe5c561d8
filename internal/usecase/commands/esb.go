package commands

import (
	"context"
	"fmt"

	"esbBot/internal/domain"
)

// DirectoryLookup answers an esb query from its split arguments.
type DirectoryLookup interface {
	Lookup(ctx context.Context, args []string) (string, error)
}

// EsbCommand queries the TIAMP directory for a project or an employee.
type EsbCommand struct {
	lookup DirectoryLookup
}

func NewEsbCommand(lookup DirectoryLookup) *EsbCommand {
	return &EsbCommand{lookup: lookup}
}

func (c *EsbCommand) Name() string {
	return "esb"
}

func (c *EsbCommand) Aliases() []string {
	return []string{"tiamp"}
}

func (c *EsbCommand) SupportsPlatform(domain.Platform) bool {
	return true
}

func (c *EsbCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	text, err := c.lookup.Lookup(ctx, cmdCtx.Args)
	if err != nil {
		return fmt.Errorf("esb: %w", err)
	}
	return cmdCtx.Reply(ctx, text)
}
