package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"esbBot/internal/domain"
)

// Store keeps the bot settings in a single SQLite file.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite: empty db path")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: creating dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const settingsTable = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT,
	updated_at TIMESTAMP NOT NULL
);`

	if _, err := db.Exec(settingsTable); err != nil {
		return fmt.Errorf("sqlite: migrate settings: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ----- Plugin settings -----
//
// Plugin overrides live in the settings table as "<plugin>.<KEY>".

func pluginPrefix(plugin string) string {
	return strings.TrimSpace(plugin) + "."
}

func (s *Store) ListPluginSettings(ctx context.Context, plugin string) (map[string]string, error) {
	if strings.TrimSpace(plugin) == "" {
		return nil, fmt.Errorf("sqlite: empty plugin name")
	}

	prefix := pluginPrefix(plugin)
	const query = `SELECT key, value FROM settings WHERE substr(key, 1, ?) = ?;`

	rows, err := s.db.QueryContext(ctx, query, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list plugin settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("sqlite: scan plugin setting: %w", err)
		}
		out[strings.TrimPrefix(key, prefix)] = value.String
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list plugin settings rows: %w", err)
	}

	return out, nil
}

func (s *Store) ReplacePluginSettings(ctx context.Context, plugin string, values map[string]string) error {
	if strings.TrimSpace(plugin) == "" {
		return fmt.Errorf("sqlite: empty plugin name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	prefix := pluginPrefix(plugin)
	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE substr(key, 1, ?) = ?;`, len(prefix), prefix); err != nil {
		return fmt.Errorf("sqlite: clear plugin settings: %w", err)
	}

	now := time.Now().UTC()
	for key, value := range values {
		if strings.TrimSpace(key) == "" {
			continue
		}
		if err := upsertSetting(ctx, tx, prefix+key, value, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit plugin settings: %w", err)
	}
	return nil
}

func (s *Store) DeletePluginSettings(ctx context.Context, plugin string) error {
	if strings.TrimSpace(plugin) == "" {
		return fmt.Errorf("sqlite: empty plugin name")
	}
	prefix := pluginPrefix(plugin)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE substr(key, 1, ?) = ?;`, len(prefix), prefix); err != nil {
		return fmt.Errorf("sqlite: delete plugin settings: %w", err)
	}
	return nil
}

var _ domain.PluginSettingsRepository = (*Store)(nil)

// ----- Helpers -----

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertSetting(ctx context.Context, db execer, key, value string, now time.Time) error {
	const stmt = `
INSERT INTO settings (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	value=excluded.value,
	updated_at=excluded.updated_at;
`
	if _, err := db.ExecContext(ctx, stmt, key, value, now); err != nil {
		return fmt.Errorf("sqlite: set setting: %w", err)
	}
	return nil
}
