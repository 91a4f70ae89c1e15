package config

import (
	"fmt"
	"path/filepath"

	"github.com/lavroovich/aviator-winelink/internal/utils"
)

// Config holds every setting the provisioning pipeline needs. It is
// built once by Load, validated, and passed by reference into each
// step; steps never read the process environment themselves.
type Config struct {
	Domain      string `env:"WINELINK_DOMAIN,default=vinelink.lavroovich.fun"`
	ServiceName string `env:"WINELINK_SERVICE,default=winelink"`
	User        string `env:"WINELINK_USER,default=winelink"`
	Group       string `env:"WINELINK_GROUP,default=winelink"`
	BindPort    int    `env:"WINELINK_PORT,default=8080"`
	Workers     int    `env:"WINELINK_WORKERS,default=3"`
	TimeoutSecs int    `env:"WINELINK_TIMEOUT,default=120"`
	Entrypoint  string `env:"WINELINK_ENTRYPOINT,default=app:app"`
	AppRoot     string `env:"WINELINK_APP_ROOT,default=/opt/winelink"`
}

func (c *Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	for name, value := range map[string]string{
		"service": c.ServiceName,
		"user":    c.User,
		"group":   c.Group,
	} {
		if !utils.IsValidName(value) {
			return fmt.Errorf("invalid %s name %q (lowercase letters, digits and dashes only)", name, value)
		}
	}
	if c.BindPort < 1 || c.BindPort > 65535 {
		return fmt.Errorf("invalid port %d (must be 1-65535)", c.BindPort)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.TimeoutSecs < 1 {
		return fmt.Errorf("timeout must be at least 1 second, got %d", c.TimeoutSecs)
	}
	if c.Entrypoint == "" {
		return fmt.Errorf("entrypoint cannot be empty")
	}
	if !filepath.IsAbs(c.AppRoot) {
		return fmt.Errorf("app root must be an absolute path, got %q", c.AppRoot)
	}
	return nil
}

func (c *Config) VenvDir() string {
	return filepath.Join(c.AppRoot, "venv")
}

func (c *Config) RequirementsFile() string {
	return filepath.Join(c.AppRoot, "requirements.txt")
}

func (c *Config) GunicornPath() string {
	return filepath.Join(c.VenvDir(), "bin", "gunicorn")
}

func (c *Config) StaticDir() string {
	return filepath.Join(c.AppRoot, "static")
}

func (c *Config) BindAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", c.BindPort)
}

func (c *Config) UnitName() string {
	return c.ServiceName + ".service"
}
