package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/pirizgpt/cli/internal/api"
)

const configFileName = "pirizgpt.json"

// Load finds and loads configuration from standard locations.
// It merges global config with project config (project takes precedence),
// then resolves environment references and applies defaults.
func Load() (*Config, error) {
	cfg := NewConfig()

	globalPath := GlobalConfigPath()
	if err := loadFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	projectPath := findProjectConfig()
	if projectPath != "" {
		projectCfg := NewConfig()
		if err := loadFile(projectPath, projectCfg); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
		mergeConfig(cfg, projectCfg)
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := NewConfig()

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	//nolint:gosec // G304: Path is from trusted config locations, not user input.
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		// Check for pirizgpt.json.
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		// Check for .pirizgpt.json (hidden).
		hiddenPath := filepath.Join(dir, "."+configFileName)
		if _, err := os.Stat(hiddenPath); err == nil {
			return hiddenPath
		}

		// Move to parent directory.
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func mergeConfig(dst, src *Config) {
	if src.Server.URL != "" {
		dst.Server.URL = src.Server.URL
	}

	if src.Speech.Enabled {
		dst.Speech.Enabled = true
	}
	if src.Speech.Voice != "" {
		dst.Speech.Voice = src.Speech.Voice
	}

	if src.Chat.HistoryLimit != 0 {
		dst.Chat.HistoryLimit = src.Chat.HistoryLimit
	}
	if src.Chat.SessionLimit != 0 {
		dst.Chat.SessionLimit = src.Chat.SessionLimit
	}
	if src.Chat.Stream != nil {
		dst.Chat.Stream = src.Chat.Stream
	}

	if src.Options != nil {
		if dst.Options == nil {
			dst.Options = &Options{}
		}
		if src.Options.DataDir != "" {
			dst.Options.DataDir = src.Options.DataDir
		}
		if src.Options.Theme != "" {
			dst.Options.Theme = src.Options.Theme
		}
		if src.Options.Debug {
			dst.Options.Debug = true
		}
	}
}

func applyDefaults(cfg *Config) error {
	if cfg.Options == nil {
		cfg.Options = &Options{}
	}
	if cfg.Options.DataDir == "" {
		cfg.Options.DataDir = filepath.Join(xdg.DataHome, appName)
	}

	if cfg.Server.URL == "" {
		cfg.Server.URL = api.DefaultBaseURL
	} else {
		resolved, err := Resolve(cfg.Server.URL)
		if err != nil {
			return fmt.Errorf("resolving server url: %w", err)
		}
		cfg.Server.URL = resolved
	}

	if cfg.Chat.HistoryLimit == 0 {
		cfg.Chat.HistoryLimit = api.DefaultHistoryLimit
	}

	return nil
}

// GlobalConfigPath returns the path to the global configuration file.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// DataDir returns the data directory path from configuration.
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}
