package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esbBot/internal/domain"
)

type stubCommand struct {
	name      string
	aliases   []string
	platforms []domain.Platform
	err       error

	calls []*Context
}

func (c *stubCommand) Name() string      { return c.name }
func (c *stubCommand) Aliases() []string { return c.aliases }

func (c *stubCommand) SupportsPlatform(p domain.Platform) bool {
	if len(c.platforms) == 0 {
		return true
	}
	for _, supported := range c.platforms {
		if supported == p {
			return true
		}
	}
	return false
}

func (c *stubCommand) Handle(_ context.Context, cmdCtx *Context) error {
	c.calls = append(c.calls, cmdCtx)
	return c.err
}

func TestNewRouter_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "!", NewRouter("").Prefix())
	assert.Equal(t, "?", NewRouter("?").Prefix())
}

func TestRouter_DispatchesByNameAndAlias(t *testing.T) {
	cmd := &stubCommand{name: "esb", aliases: []string{"TIAMP"}}
	r := NewRouter("!")
	r.Register(cmd)
	out := &recordingSender{}

	require.NoError(t, r.Handle(context.Background(), chatMessage("  !ESB  project\t42 "), out))
	require.NoError(t, r.Handle(context.Background(), chatMessage("!tiamp e 7"), out))

	require.Len(t, cmd.calls, 2)
	assert.Equal(t, []string{"project", "42"}, cmd.calls[0].Args)
	assert.Equal(t, "ESB  project\t42", cmd.calls[0].Raw)
	assert.Equal(t, []string{"e", "7"}, cmd.calls[1].Args)
	assert.Empty(t, out.sent)
}

func TestRouter_IgnoresNonCommands(t *testing.T) {
	cmd := &stubCommand{name: "esb"}
	r := NewRouter("!")
	r.Register(cmd)
	out := &recordingSender{}

	for _, text := range []string{"", "   ", "hello", "!", "! "} {
		require.NoError(t, r.Handle(context.Background(), chatMessage(text), out))
	}

	assert.Empty(t, cmd.calls)
	assert.Empty(t, out.sent)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r := NewRouter("!")
	out := &recordingSender{}

	require.NoError(t, r.Handle(context.Background(), chatMessage("!nope"), out))

	require.Len(t, out.sent, 1)
	assert.Equal(t, sentMessage{Platform: domain.PlatformTwitch, ChannelID: "chan", Text: msgUnknownCommand}, out.sent[0])
}

func TestRouter_UnsupportedPlatform(t *testing.T) {
	cmd := &stubCommand{name: "only-kick", platforms: []domain.Platform{domain.PlatformKick}}
	r := NewRouter("!")
	r.Register(cmd)
	out := &recordingSender{}

	require.NoError(t, r.Handle(context.Background(), chatMessage("!only-kick"), out))

	assert.Empty(t, cmd.calls)
	assert.Equal(t, []string{msgUnsupportedCommand}, out.texts())
}

func TestRouter_HandlerErrorGetsGenericReply(t *testing.T) {
	cmd := &stubCommand{name: "esb", err: errors.New("tiamp: GET http://h/p: connection refused")}
	r := NewRouter("!")
	r.Register(cmd)
	out := &recordingSender{}

	require.NoError(t, r.Handle(context.Background(), chatMessage("!esb p 1"), out))

	assert.Equal(t, []string{MsgCommandFailed}, out.texts())
}

func TestPingCommand(t *testing.T) {
	r := NewRouter("!")
	r.Register(NewPingCommand())
	out := &recordingSender{}

	msg := chatMessage("!ping")
	msg.Platform = domain.PlatformKick
	require.NoError(t, r.Handle(context.Background(), msg, out))

	assert.Equal(t, []string{"pong depuis kick"}, out.texts())
}

func TestRouter_ObserverSeesOutcomes(t *testing.T) {
	type seen struct {
		command  string
		argCount int
		outcome  string
	}
	var got []seen

	r := NewRouter("!")
	r.Register(&stubCommand{name: "ok"})
	r.Register(&stubCommand{name: "bad", err: errors.New("x")})
	r.Register(&stubCommand{name: "kick", platforms: []domain.Platform{domain.PlatformKick}})
	r.SetObserver(func(_ domain.Message, command string, argCount int, outcome string) {
		got = append(got, seen{command, argCount, outcome})
	})
	out := &recordingSender{}

	for _, text := range []string{"!ok a b", "!bad", "!kick", "!missing x", "not a command"} {
		require.NoError(t, r.Handle(context.Background(), chatMessage(text), out))
	}

	assert.Equal(t, []seen{
		{"ok", 2, OutcomeOK},
		{"bad", 0, OutcomeFailed},
		{"kick", 0, OutcomeUnsupported},
		{"missing", 1, OutcomeUnknown},
	}, got)
}
