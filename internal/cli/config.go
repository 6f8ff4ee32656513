package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-level CLI configuration, read from
// ~/.config/snaprestore/config.toml. Every field has a working default, so
// a missing file is not an error.
type Config struct {
	// FallbackFamily and FallbackStyle select the font substituted for
	// unresolvable fonts during a rebuild.
	FallbackFamily string `toml:"fallback_family"`
	FallbackStyle  string `toml:"fallback_style"`

	// YieldEvery is the number of nodes processed between cooperative
	// yields.
	YieldEvery int `toml:"yield_every"`

	// CacheDir is where reconstruction reports are cached.
	CacheDir string `toml:"cache_dir"`

	// RedisAddr switches the serve command's report cache to Redis when
	// non-empty.
	RedisAddr string `toml:"redis_addr"`

	// ServeAddr is the default listen address for the serve command.
	ServeAddr string `toml:"serve_addr"`
}

func defaultConfig() Config {
	return Config{
		FallbackFamily: "Inter",
		FallbackStyle:  "Regular",
		YieldEvery:     50,
		ServeAddr:      ":8386",
	}
}

// configPath returns the path of the user config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "snaprestore", "config.toml"), nil
}

// loadConfig reads the user config, falling back to defaults when the file
// does not exist. path overrides the default location when non-empty.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		p, err := configPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// cacheDir resolves the report cache directory: the configured one when
// set, otherwise ~/.cache/snaprestore.
func cacheDir(cfg Config) (string, error) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", "snaprestore"), nil
}
