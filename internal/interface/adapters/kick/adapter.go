// Package kickadapter connects the bot to a Kick chatroom.
package kickadapter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	kicksdk "github.com/glichtv/kick-sdk"
	kickchatwrapper "github.com/johanvandegriff/kick-chat-wrapper"

	"esbBot/internal/domain"
	"esbBot/internal/interface/adapters/chatlines"
)

type Config struct {
	// Bot user access token, used to post messages.
	AccessToken string

	BroadcasterUserID int

	// Chatroom id, distinct from the user id: "chatroom":{"id":...} in
	// https://kick.com/api/v2/channels/{slug}.
	ChatroomID int
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

type Adapter struct {
	cfg Config

	mu      sync.RWMutex
	handler MessageHandler
	sdk     *kicksdk.Client
	ws      *kickchatwrapper.Client
}

func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) SetHandler(h MessageHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = h
}

// Start listens to the chatroom websocket and blocks until ctx is done.
func (a *Adapter) Start(ctx context.Context) error {
	if a.cfg.AccessToken == "" {
		return errors.New("kick: empty access token")
	}
	if a.cfg.ChatroomID == 0 {
		return errors.New("kick: chatroom id not configured")
	}
	if a.cfg.BroadcasterUserID == 0 {
		return errors.New("kick: broadcaster user id not configured")
	}

	sdkClient := kicksdk.NewClient(
		kicksdk.WithAccessTokens(kicksdk.AccessTokens{
			UserAccessToken: a.cfg.AccessToken,
		}),
	)

	wsClient, err := kickchatwrapper.NewClient()
	if err != nil {
		return fmt.Errorf("kick: ws client: %w", err)
	}

	if err := wsClient.JoinChannelByID(a.cfg.ChatroomID); err != nil {
		wsClient.Close()
		return fmt.Errorf("kick: JoinChannelByID: %w", err)
	}

	msgChan := wsClient.ListenForMessages()

	a.mu.Lock()
	a.sdk = sdkClient
	a.ws = wsClient
	a.mu.Unlock()

	log.Printf("kick: connected to chatroom %d (broadcaster %d)", a.cfg.ChatroomID, a.cfg.BroadcasterUserID)

	go a.readLoop(ctx, msgChan)

	<-ctx.Done()

	a.mu.Lock()
	if a.ws != nil {
		a.ws.Close()
		a.ws = nil
	}
	a.mu.Unlock()

	return ctx.Err()
}

func (a *Adapter) readLoop(ctx context.Context, msgChan <-chan kickchatwrapper.ChatMessage) {
	for {
		select {
		case m, ok := <-msgChan:
			if !ok {
				log.Println("kick: message channel closed")
				return
			}

			a.mu.RLock()
			handler := a.handler
			a.mu.RUnlock()
			if handler == nil {
				continue
			}

			if err := handler(ctx, mapChatMessageToDomain(m, a.cfg.BroadcasterUserID)); err != nil {
				log.Printf("kick: handler error: %v", err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// SendMessage posts text to the broadcaster's chat, one message per line.
func (a *Adapter) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if platform != domain.PlatformKick {
		return fmt.Errorf("kick: unsupported platform %s", platform)
	}

	a.mu.RLock()
	client := a.sdk
	a.mu.RUnlock()

	if client == nil {
		return errors.New("kick: sdk client not ready")
	}

	for _, line := range chatlines.Split(text) {
		resp, err := client.Chat().PostMessage(ctx, kicksdk.PostChatMessageInput{
			BroadcasterUserID: a.cfg.BroadcasterUserID,
			Content:           line,
			PosterType:        kicksdk.MessagePosterUser,
		})
		if err != nil {
			return fmt.Errorf("kick: PostMessage: %w", err)
		}

		if !resp.Payload.IsSent {
			meta := resp.ResponseMetadata
			log.Printf(
				"kick: PostMessage rejected (status=%d, kick_message=%q, kick_error=%q)",
				meta.StatusCode,
				meta.KickMessage,
				meta.KickError,
			)
			return fmt.Errorf("kick: message rejected by the API (status %d)", meta.StatusCode)
		}
	}

	return nil
}

func mapChatMessageToDomain(m kickchatwrapper.ChatMessage, broadcasterUserID int) domain.Message {
	sender := m.Sender

	isOwner := sender.ID == broadcasterUserID

	var isMod, isVip bool
	for _, b := range sender.Identity.Badges {
		switch strings.ToLower(b.Type) {
		case "moderator", "broadcaster":
			isMod = true
		case "vip":
			isVip = true
		}
	}

	return domain.Message{
		Platform:  domain.PlatformKick,
		ChannelID: strconv.Itoa(m.ChatroomID),
		UserID:    strconv.Itoa(sender.ID),
		Username:  sender.Username,
		Text:      m.Content,

		IsPlatformOwner: isOwner,
		IsPlatformAdmin: isOwner || isMod,
		IsPlatformMod:   isMod,
		IsPlatformVip:   isVip,
	}
}
