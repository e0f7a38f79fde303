package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds process-level CLI defaults loaded from
// ~/.config/orthogram/config.toml. DDF files remain the sole source of
// diagram-level attributes (block/connection/group styling); this file
// only carries defaults for things a diagram document has no business
// naming, such as where to cache results or how to reach the optional
// server's backing stores.
type Config struct {
	DefaultScale    float64 `toml:"default_scale"`
	DefaultOutDir   string  `toml:"default_output_dir"`
	CacheTTLMinutes int     `toml:"cache_ttl_minutes"`
	RedisAddr       string  `toml:"redis_addr"`
	MongoURI        string  `toml:"mongo_uri"`
}

// configPath returns ~/.config/orthogram/config.toml, honoring
// XDG_CONFIG_HOME when set.
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

// loadConfig reads the config file if present. A missing file is not
// an error; a malformed one is, so the user learns about it rather
// than silently falling back to defaults.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type ctxConfigKey int

const configKey ctxConfigKey = 0

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return Config{}
}
