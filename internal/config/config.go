// Package config loads the optional reqcheck configuration file.
//
// The file lives at ~/.config/reqcheck/config.toml (or under
// $XDG_CONFIG_HOME) and provides defaults that command-line flags
// override:
//
//	python = "3.11"
//	index_url = "https://pypi.org/pypi"
//
//	[cache]
//	backend = "file"        # file | redis | none
//	ttl = "24h"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "reqcheck"

// Duration wraps time.Duration so TOML values can be written as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// CacheConfig selects and tunes the response cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
}

// Config holds user-level defaults for reqcheck.
type Config struct {
	Python   string      `toml:"python"`
	IndexURL string      `toml:"index_url"`
	Cache    CacheConfig `toml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   "file",
			TTL:       Duration{24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads the configuration file at path, layered over Default.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns the XDG-style location of the config file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
