package commands

import (
	"context"
	"sync"

	"esbBot/internal/domain"
)

type sentMessage struct {
	Platform  domain.Platform
	ChannelID string
	Text      string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (s *recordingSender) SendMessage(_ context.Context, platform domain.Platform, channelID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMessage{Platform: platform, ChannelID: channelID, Text: text})
	return s.err
}

func (s *recordingSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sent))
	for _, m := range s.sent {
		out = append(out, m.Text)
	}
	return out
}

func chatMessage(text string) domain.Message {
	return domain.Message{
		Platform:  domain.PlatformTwitch,
		ChannelID: "chan",
		Username:  "viewer",
		Text:      text,
	}
}
