// Package config provides configuration management for the PirizGPT CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/sjson"
)

const appName = "pirizgpt"

// Server holds backend connection settings.
type Server struct {
	// URL is the base URL of the chat backend. Values starting with "$"
	// are resolved from the environment at load time.
	URL string `json:"url,omitempty"`
}

// Speech holds text-to-speech and speech-to-text settings.
type Speech struct {
	Voice   string `json:"voice,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
}

// Chat holds conversation behaviour settings.
type Chat struct {
	// HistoryLimit caps how many messages are fetched per session.
	// Zero means the server default.
	HistoryLimit int `json:"history_limit,omitempty"`
	// SessionLimit caps how many sessions the sidebar lists.
	SessionLimit int `json:"session_limit,omitempty"`
	// Stream disables token streaming when false; responses arrive whole.
	Stream *bool `json:"stream,omitempty"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server  Server   `json:"server,omitempty"`
	Speech  Speech   `json:"speech,omitempty"`
	Chat    Chat     `json:"chat,omitempty"`
	Options *Options `json:"options,omitempty"`
}

// Options holds optional configuration settings.
type Options struct {
	DataDir string `json:"data_directory,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// NewConfig creates a new Config with initialized sections.
func NewConfig() *Config {
	return &Config{
		Options: &Options{},
	}
}

// Streaming reports whether token streaming is enabled. It defaults to
// true when the config file is silent.
func (c *Config) Streaming() bool {
	if c.Chat.Stream == nil {
		return true
	}
	return *c.Chat.Stream
}

// Resolve expands a configuration value of the form "$ENV_VAR" from the
// environment. Plain values pass through unchanged.
func Resolve(value string) (string, error) {
	if !strings.HasPrefix(value, "$") {
		return value, nil
	}
	name := strings.TrimPrefix(value, "$")
	resolved, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q not set", name)
	}
	return resolved, nil
}

// SetConfigField updates a single field in the config file using JSON path notation.
// This uses sjson for surgical updates - only the specified field is modified.
func SetConfigField(key string, value any) error {
	configPath := GlobalConfigPath()

	//nolint:gosec // G304: configPath is from trusted GlobalConfigPath(), not user input.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	//nolint:gosec // 0o600 is intentionally restrictive for security.
	if err := os.WriteFile(configPath, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
