// Package esbconfig holds the configuration of the esb command: the fixed
// key set, its defaults, validation and the process-wide active copy.
package esbconfig

import (
	"maps"
	"slices"
)

const (
	KeyProtocol            = "PROTOCOL"
	KeyHost                = "HOST"
	KeyTiampPort           = "TIAMP_PORT"
	KeyTiampPath           = "TIAMP_PATH"
	KeyProjectURLTemplate  = "PROJECT_URL_TEMPLATE"
	KeyEmployeeURLTemplate = "EMPLOYEE_URL_TEMPLATE"
	KeyClientID            = "CLIENT_ID"
	KeyClientSecret        = "CLIENT_SECRET"
	KeyHTTPProxy           = "HTTP_PROXY"
	KeyHTTPSProxy          = "HTTPS_PROXY"
)

const redactedValue = "********"

var defaults = map[string]string{
	KeyProtocol:            "http",
	KeyHost:                "esb-test.utb.coop",
	KeyTiampPort:           "8091",
	KeyTiampPath:           "api/system/tiamp",
	KeyProjectURLTemplate:  "{PROTOCOL}://{HOST}:{TIAMP_PORT}/{TIAMP_PATH}/project/{project_id}?client_id={CLIENT_ID}&client_secret={CLIENT_SECRET}",
	KeyEmployeeURLTemplate: "{PROTOCOL}://{HOST}:{TIAMP_PORT}/{TIAMP_PATH}/employee/{employee_id}?client_id={CLIENT_ID}&client_secret={CLIENT_SECRET}",
	KeyClientID:            "",
	KeyClientSecret:        "",
	KeyHTTPProxy:           "",
	KeyHTTPSProxy:          "",
}

// Config is a flat key/value configuration. Values handed out by Manager are
// copies; mutating them has no effect on the active configuration.
type Config map[string]string

// Template returns a fresh copy of the default configuration.
func Template() Config {
	return Config(maps.Clone(defaults))
}

// KnownKeys returns the accepted keys, sorted.
func KnownKeys() []string {
	return slices.Sorted(maps.Keys(defaults))
}

func IsKnownKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

func (c Config) Get(key string) string {
	return c[key]
}

func (c Config) Clone() Config {
	if c == nil {
		return Config{}
	}
	return maps.Clone(c)
}

// Merge returns a copy of c with every entry of overrides applied on top.
func (c Config) Merge(overrides map[string]string) Config {
	out := c.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Redacted returns a copy safe to show in chat or over the API.
func (c Config) Redacted() Config {
	out := c.Clone()
	if out[KeyClientSecret] != "" {
		out[KeyClientSecret] = redactedValue
	}
	return out
}
