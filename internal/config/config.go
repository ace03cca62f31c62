package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName            = "flaq"
	configFileName     = "config.toml"
	localConfigName    = "flaq.toml"
	defaultHistorySize = 200
)

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // searched when no path is given; empty means cwd
	Recursive     bool   `koanf:"recursive"`      // descend into subdirectories
	Workers       int    `koanf:"workers"`        // files evaluated in parallel (default: number of CPUs)
	AllowOther    bool   `koanf:"allow_other"`    // allow edits to non-standard fields
	Color         string `koanf:"color"`          // "auto", "always" or "never"
	VerifyContent bool   `koanf:"verify_content"` // check FLAC content, not only the extension

	History HistoryConfig `koanf:"history"`
}

// HistoryConfig controls the query history.
type HistoryConfig struct {
	Enabled *bool `koanf:"enabled"` // record queries (default: true)
	Limit   int   `koanf:"limit"`   // entries kept (default: 200)
}

// Load reads the configuration files. explicit, when set, is loaded last
// and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", explicit, err)
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in default_folder
	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: want auto, always or never", c.Color)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must not be negative", c.Workers)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("invalid history.limit %d: must not be negative", c.History.Limit)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.History.Enabled == nil {
		enabled := true
		c.History.Enabled = &enabled
	}
	if c.History.Limit == 0 {
		c.History.Limit = defaultHistorySize
	}
}

// HistoryEnabled reports whether queries should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/flaq/config.toml
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		// 2. ./flaq.toml (pwd, highest priority)
		localConfigName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
