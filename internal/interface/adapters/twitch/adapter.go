// Package twitchadapter connects the bot to Twitch chat over IRC.
package twitchadapter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/adeithe/go-twitch/irc"

	"esbBot/internal/domain"
	"esbBot/internal/interface/adapters/chatlines"
)

type Config struct {
	Username   string
	OAuthToken string
	Channels   []string
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

type Adapter struct {
	cfg Config

	mu      sync.RWMutex
	handler MessageHandler
	conn    *irc.Conn
}

func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) SetHandler(h MessageHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = h
}

// Start connects, joins the channels and blocks until ctx is done.
func (a *Adapter) Start(ctx context.Context) error {
	if len(a.cfg.Channels) == 0 {
		return errors.New("twitch: no channels configured")
	}
	if a.cfg.Username == "" || a.cfg.OAuthToken == "" {
		return errors.New("twitch: empty username or oauth token")
	}

	conn := &irc.Conn{}

	if err := conn.SetLogin(a.cfg.Username, a.cfg.OAuthToken); err != nil {
		return fmt.Errorf("twitch: SetLogin: %w", err)
	}

	conn.OnMessage(func(cm irc.ChatMessage) {
		a.mu.RLock()
		handler := a.handler
		a.mu.RUnlock()
		if handler == nil {
			return
		}

		if err := handler(ctx, mapChatMessageToDomain(cm)); err != nil {
			log.Printf("twitch: handler error: %v", err)
		}
	})

	if err := conn.Connect(); err != nil {
		return fmt.Errorf("twitch: Connect: %w", err)
	}

	if err := conn.Join(a.cfg.Channels...); err != nil {
		conn.Close()
		return fmt.Errorf("twitch: Join: %w", err)
	}

	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()

	log.Printf("twitch: connected as %s to %v", a.cfg.Username, a.cfg.Channels)

	<-ctx.Done()

	a.mu.Lock()
	if a.conn != nil {
		a.conn.Close()
		a.conn = nil
	}
	a.mu.Unlock()

	return ctx.Err()
}

// SendMessage says text in channelID, one IRC message per line.
func (a *Adapter) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if platform != domain.PlatformTwitch {
		return fmt.Errorf("twitch: unsupported platform %s", platform)
	}

	a.mu.RLock()
	conn := a.conn
	a.mu.RUnlock()

	if conn == nil || !conn.IsConnected() {
		return errors.New("twitch: connection not ready")
	}

	for _, line := range chatlines.Split(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := conn.Say(channelID, line); err != nil {
			return fmt.Errorf("twitch: Say: %w", err)
		}
	}
	return nil
}

func mapChatMessageToDomain(cm irc.ChatMessage) domain.Message {
	sender := cm.Sender

	return domain.Message{
		Platform:  domain.PlatformTwitch,
		ChannelID: cm.Channel,
		UserID:    strconv.FormatInt(sender.ID, 10),
		Username:  sender.DisplayName,
		Text:      cm.Text,

		IsPlatformOwner: sender.IsBroadcaster,
		IsPlatformAdmin: sender.IsBroadcaster || sender.IsModerator,
		IsPlatformMod:   sender.IsModerator,
		IsPlatformVip:   sender.IsVIP,
	}
}
