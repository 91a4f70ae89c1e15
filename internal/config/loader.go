package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// FileName is the optional config file looked up in the working
// directory. Environment variables always win over file values.
const FileName = "winelink.toml"

type fileConfig struct {
	Domain      *string `toml:"domain"`
	ServiceName *string `toml:"service"`
	User        *string `toml:"user"`
	Group       *string `toml:"group"`
	BindPort    *int    `toml:"port"`
	Workers     *int    `toml:"workers"`
	TimeoutSecs *int    `toml:"timeout"`
	Entrypoint  *string `toml:"entrypoint"`
	AppRoot     *string `toml:"app_root"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := applyFileOverrides(&cfg, FileName); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyFileOverrides(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// file values fill in only where the environment is silent
	setString := func(envKey string, dst *string, src *string) {
		if src != nil && os.Getenv(envKey) == "" {
			*dst = *src
		}
	}
	setInt := func(envKey string, dst *int, src *int) {
		if src != nil && os.Getenv(envKey) == "" {
			*dst = *src
		}
	}

	setString("WINELINK_DOMAIN", &cfg.Domain, fc.Domain)
	setString("WINELINK_SERVICE", &cfg.ServiceName, fc.ServiceName)
	setString("WINELINK_USER", &cfg.User, fc.User)
	setString("WINELINK_GROUP", &cfg.Group, fc.Group)
	setInt("WINELINK_PORT", &cfg.BindPort, fc.BindPort)
	setInt("WINELINK_WORKERS", &cfg.Workers, fc.Workers)
	setInt("WINELINK_TIMEOUT", &cfg.TimeoutSecs, fc.TimeoutSecs)
	setString("WINELINK_ENTRYPOINT", &cfg.Entrypoint, fc.Entrypoint)
	setString("WINELINK_APP_ROOT", &cfg.AppRoot, fc.AppRoot)

	return nil
}
