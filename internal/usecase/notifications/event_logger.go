// Package notifications writes bot activity from the event bus to the log.
package notifications

import (
	"context"
	"encoding/json"
	"log"

	"esbBot/internal/app/events"
)

// Subscriber is the part of events.Bus the logger reads from.
type Subscriber interface {
	Subscribe(topic string) (<-chan any, func())
}

// EventLogger prints one JSON line per event, tagged with its topic.
type EventLogger struct {
	logf func(format string, args ...any)
}

func NewEventLogger() *EventLogger {
	return &EventLogger{logf: log.Printf}
}

// Run consumes the given topics until ctx is done or every subscription is
// closed.
func (l *EventLogger) Run(ctx context.Context, bus Subscriber, topics ...string) {
	if len(topics) == 0 {
		topics = []string{events.TopicCommandHandled, events.TopicConfigChanged}
	}

	merged := make(chan event)
	done := make(chan struct{})
	defer close(done)

	open := len(topics)
	closed := make(chan struct{}, len(topics))

	for _, topic := range topics {
		ch, unsubscribe := bus.Subscribe(topic)
		defer unsubscribe()

		go func(topic string, ch <-chan any) {
			defer func() { closed <- struct{}{} }()
			for payload := range ch {
				select {
				case merged <- event{topic: topic, payload: payload}:
				case <-done:
					return
				}
			}
		}(topic, ch)
	}

	for open > 0 {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			open--
		case ev := <-merged:
			l.logPayload(ev.topic, ev.payload)
		}
	}
}

type event struct {
	topic   string
	payload any
}

func (l *EventLogger) logPayload(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		l.logf("[%s] %v", topic, payload)
		return
	}
	l.logf("[%s] %s", topic, data)
}
