// Package config provides loading and parsing of the strategist configuration
// file using Viper. It defines the configuration schema and publishes the
// loaded sections through configloader.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/mfulz/strategist/internal/configloader"
	"github.com/mfulz/strategist/internal/logging"
)

// FileName is the config file looked up by ResolveConfigPath.
const FileName = "strategist.yaml"

// Config represents the full structure of the strategist configuration file.
type Config struct {
	Log      logging.Config `mapstructure:"log"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
}

// DispatchConfig tunes the dispatcher used by the CLI.
type DispatchConfig struct {
	Seal     bool          `mapstructure:"seal"`      // freeze the registry before the first lookup
	Cache    bool          `mapstructure:"cache"`     // memoize matches per query key (needs seal)
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // 0 keeps entries forever
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("dispatch.seal", true)
	v.SetDefault("dispatch.cache", false)
	v.SetDefault("dispatch.cache_ttl", "0s")
}

// Load reads the configuration file at path. An empty path falls back to
// configloader.ResolveConfigPath; when no file is found there, defaults are
// returned. An explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path == "" {
		if resolved, err := configloader.ResolveConfigPath(FileName); err == nil {
			path = resolved
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	if cfg.Dispatch.CacheTTL < 0 {
		return nil, errors.New("dispatch.cache_ttl must not be negative")
	}
	return &cfg, nil
}

// Publish makes cfg and its logging section available through configloader,
// replacing anything published before.
func Publish(cfg *Config) {
	configloader.SetConfig(cfg)
	configloader.SetConfig(&cfg.Log)
}
