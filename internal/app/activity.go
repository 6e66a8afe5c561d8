// Package app wires bot activity onto the event bus.
package app

import (
	"context"
	"maps"
	"slices"

	"esbBot/internal/app/events"
	"esbBot/internal/domain"
	"esbBot/internal/infrastructure/metrics"
	"esbBot/internal/usecase/commands"
	"esbBot/internal/usecase/esbconfig"
)

// CommandObserver publishes every routed command on the bus.
func CommandObserver(bus *events.Bus) commands.Observer {
	return func(msg domain.Message, command string, argCount int, outcome string) {
		bus.Publish(events.TopicCommandHandled, events.NewCommandHandled(msg, command, argCount, outcome))
	}
}

// MetricsObserver counts every routed command.
func MetricsObserver(m *metrics.Metrics) commands.Observer {
	return func(msg domain.Message, command string, _ int, outcome string) {
		m.CommandHandled(msg.Platform, command, outcome, outcome != commands.OutcomeUnknown)
	}
}

// Observers fans one router notification out to several observers.
func Observers(observers ...commands.Observer) commands.Observer {
	return func(msg domain.Message, command string, argCount int, outcome string) {
		for _, o := range observers {
			o(msg, command, argCount, outcome)
		}
	}
}

// SettingsManager is the esb configuration surface shared by the chat
// command and the HTTP API.
type SettingsManager interface {
	Current() esbconfig.Config
	Redacted() esbconfig.Config
	Overrides() map[string]string
	Configure(ctx context.Context, overrides map[string]string) error
	Reset(ctx context.Context) error
}

// AuditedSettings publishes a ConfigChanged event after each successful
// reconfiguration.
type AuditedSettings struct {
	SettingsManager
	bus *events.Bus
}

func NewAuditedSettings(inner SettingsManager, bus *events.Bus) *AuditedSettings {
	return &AuditedSettings{SettingsManager: inner, bus: bus}
}

func (s *AuditedSettings) Configure(ctx context.Context, overrides map[string]string) error {
	if err := s.SettingsManager.Configure(ctx, overrides); err != nil {
		return err
	}
	s.bus.Publish(events.TopicConfigChanged, events.NewConfigChanged(slices.Sorted(maps.Keys(overrides)), false))
	return nil
}

func (s *AuditedSettings) Reset(ctx context.Context) error {
	if err := s.SettingsManager.Reset(ctx); err != nil {
		return err
	}
	s.bus.Publish(events.TopicConfigChanged, events.NewConfigChanged(nil, true))
	return nil
}
