package esbconfig

import (
	"context"
	"fmt"
	"log"
	"maps"
	"sync"

	"esbBot/internal/domain"
)

// PluginName is the key under which overrides are persisted.
const PluginName = "esb"

// Manager owns the active configuration. The active value is built as
// defaults <- environment overrides <- persisted overrides and is replaced
// wholesale on every reconfiguration.
type Manager struct {
	repo    domain.PluginSettingsRepository
	checker *Checker

	mu        sync.RWMutex
	base      Config
	persisted map[string]string
	current   Config
}

// NewManager validates the environment overrides, loads the persisted ones
// from repo (which may be nil) and activates the merged configuration.
func NewManager(ctx context.Context, repo domain.PluginSettingsRepository, envOverrides map[string]string) (*Manager, error) {
	return NewManagerWithChecker(ctx, repo, envOverrides, defaultChecker)
}

func NewManagerWithChecker(ctx context.Context, repo domain.PluginSettingsRepository, envOverrides map[string]string, checker *Checker) (*Manager, error) {
	if checker == nil {
		checker = defaultChecker
	}
	if err := checker.Check(envOverrides); err != nil {
		return nil, fmt.Errorf("esbconfig: environment overrides: %w", err)
	}

	m := &Manager{
		repo:      repo,
		checker:   checker,
		base:      Template().Merge(envOverrides),
		persisted: map[string]string{},
	}

	if repo != nil {
		stored, err := repo.ListPluginSettings(ctx, PluginName)
		if err != nil {
			return nil, fmt.Errorf("esbconfig: load persisted overrides: %w", err)
		}
		if err := checker.Check(stored); err != nil {
			return nil, fmt.Errorf("esbconfig: persisted overrides: %w", err)
		}
		if stored != nil {
			m.persisted = maps.Clone(stored)
		}
	}

	m.current = m.base.Merge(m.persisted)
	return m, nil
}

// Current returns a copy of the active configuration.
func (m *Manager) Current() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

// Redacted returns the active configuration with secrets masked.
func (m *Manager) Redacted() Config {
	return m.Current().Redacted()
}

// Overrides returns the persisted overrides only.
func (m *Manager) Overrides() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.persisted)
}

// Configure applies overrides on top of the persisted ones. Nothing changes
// when validation or persistence fails.
func (m *Manager) Configure(ctx context.Context, overrides map[string]string) error {
	if err := m.checker.Check(overrides); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := maps.Clone(m.persisted)
	for k, v := range overrides {
		next[k] = v
	}

	if m.repo != nil {
		if err := m.repo.ReplacePluginSettings(ctx, PluginName, next); err != nil {
			return fmt.Errorf("esbconfig: persist overrides: %w", err)
		}
	}

	m.persisted = next
	m.current = m.base.Merge(next)
	log.Printf("esbconfig: configuration updated (%d persisted overrides)", len(next))
	return nil
}

// Reset drops every persisted override.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.repo != nil {
		if err := m.repo.DeletePluginSettings(ctx, PluginName); err != nil {
			return fmt.Errorf("esbconfig: delete overrides: %w", err)
		}
	}

	m.persisted = map[string]string{}
	m.current = m.base.Clone()
	log.Printf("esbconfig: persisted overrides cleared")
	return nil
}
