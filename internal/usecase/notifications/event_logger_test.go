package notifications

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"esbBot/internal/app/events"
)

type closedTopics map[string][]any

func (c closedTopics) Subscribe(topic string) (<-chan any, func()) {
	ch := make(chan any, len(c[topic]))
	for _, payload := range c[topic] {
		ch <- payload
	}
	close(ch)
	return ch, func() {}
}

func TestEventLogger_LogsEveryEvent(t *testing.T) {
	var lines []string
	l := &EventLogger{logf: func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}}

	bus := closedTopics{
		events.TopicConfigChanged: {events.ConfigChanged{Keys: []string{"HOST"}, Timestamp: "t"}},
		events.TopicCommandHandled: {
			events.CommandHandled{Platform: "web", Command: "esb", ArgCount: 2, Outcome: "ok", Timestamp: "t"},
			math.Inf(1),
		},
	}

	l.Run(context.Background(), bus)

	assert.ElementsMatch(t, []string{
		`[esb:config_changed] {"keys":["HOST"],"reset":false,"timestamp":"t"}`,
		`[command:handled] {"platform":"web","channel_id":"","username":"","command":"esb","arg_count":2,"outcome":"ok","timestamp":"t"}`,
		`[command:handled] +Inf`,
	}, lines)
}

func TestEventLogger_StopsOnContext(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		NewEventLogger().Run(ctx, bus)
		close(done)
	}()
	<-done
}
