package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EsbOverridePrefix marks environment variables that override the esb
// configuration: ESB_HOST=... overrides HOST.
const EsbOverridePrefix = "ESB_"

type Config struct {
	TwitchUsername string
	TwitchToken    string
	TwitchChannels []string

	KickToken             string
	KickBroadcasterUserID int
	KickChatroomID        int

	CommandPrefix  string
	APIAddr        string
	AllowedOrigins []string
	DatabasePath   string

	// EsbOverrides are not validated here; unknown keys are reported when
	// the esb configuration is built.
	EsbOverrides map[string]string
}

func (c *Config) TwitchConfigured() bool {
	return c.TwitchUsername != "" && c.TwitchToken != "" && len(c.TwitchChannels) > 0
}

func (c *Config) KickConfigured() bool {
	return c.KickToken != "" && c.KickBroadcasterUserID != 0 && c.KickChatroomID != 0
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TwitchUsername:        os.Getenv("TWITCH_BOT_USERNAME"),
		TwitchToken:           os.Getenv("TWITCH_BOT_ACCESS_TOKEN"),
		TwitchChannels:        splitList(os.Getenv("TWITCH_BOT_CHANNELS")),
		KickToken:             os.Getenv("KICK_BOT_TOKEN"),
		KickBroadcasterUserID: getEnvInt("KICK_BROADCASTER_USER_ID"),
		KickChatroomID:        getEnvInt("KICK_CHATROOM_ID"),
		CommandPrefix:         getEnvWithDefault("BOT_COMMAND_PREFIX", "!"),
		APIAddr:               getEnvWithDefault("BOT_API_ADDR", ":8080"),
		AllowedOrigins:        splitList(os.Getenv("BOT_ALLOWED_ORIGINS")),
		DatabasePath:          getEnvWithDefault("BOT_DB_PATH", "data/esbbot.db"),
		EsbOverrides:          esbOverrides(os.Environ()),
	}

	if !cfg.TwitchConfigured() {
		log.Println("config: Twitch not configured, adapter disabled")
	}
	if !cfg.KickConfigured() {
		log.Println("config: Kick not configured, adapter disabled")
	}

	return cfg, nil
}

func esbOverrides(environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EsbOverridePrefix) {
			continue
		}
		name := strings.TrimPrefix(key, EsbOverridePrefix)
		if name == "" {
			continue
		}
		out[name] = value
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid %s (%q), ignored", key, raw)
		return 0
	}
	return n
}
