package outs

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"esbBot/internal/domain"
)

// Sender is implemented by every outgoing adapter (Twitch, Kick, web chat).
type Sender interface {
	SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error
}

// MultiSender routes each reply to the sender of its platform.
type MultiSender struct {
	mu      sync.RWMutex
	senders map[domain.Platform]Sender
}

func NewMultiSender() *MultiSender {
	return &MultiSender{
		senders: make(map[domain.Platform]Sender),
	}
}

func (m *MultiSender) Register(platform domain.Platform, sender Sender) {
	if m == nil || sender == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.senders[platform] = sender
}

func (m *MultiSender) Unregister(platform domain.Platform) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.senders, platform)
}

// Platforms lists the registered platforms, sorted.
func (m *MultiSender) Platforms() []domain.Platform {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Platform, 0, len(m.senders))
	for p := range m.senders {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

func (m *MultiSender) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if m == nil {
		return fmt.Errorf("outs: no multi sender configured")
	}
	m.mu.RLock()
	sender, ok := m.senders[platform]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("outs: no sender registered for platform %s", platform)
	}

	return sender.SendMessage(ctx, platform, channelID, text)
}

var _ domain.OutgoingMessagePort = (*MultiSender)(nil)
