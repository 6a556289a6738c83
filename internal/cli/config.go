package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/flowtune/config.toml (or $XDG_CONFIG_HOME/flowtune/config.toml).
//
// Example:
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//	db = 2
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Redis RedisConfig `toml:"redis"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// defaultConfig returns the configuration used when no config file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: backendFile},
		Redis: RedisConfig{Addr: "localhost:6379"},
	}
}

// configPath returns the config file location using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file, falling back to defaults when the file
// does not exist. A malformed file or unknown backend is an error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	switch cfg.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	case "":
		cfg.Cache.Backend = backendFile
	default:
		return defaultConfig(), fmt.Errorf("%s: unknown cache backend %q (must be file, redis, or none)", path, cfg.Cache.Backend)
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	return cfg, nil
}
