// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JaimeStill/portfolio-admin/pkg/attachment"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
	"github.com/JaimeStill/portfolio-admin/pkg/session"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvAdminEnv specifies the environment name for configuration overlays.
	EnvAdminEnv = "ADMIN_ENV"

	// EnvAdminConfig overrides the base configuration file location.
	EnvAdminConfig = "ADMIN_CONFIG"
)

var clientEnv = &client.Env{
	BaseURL: "ADMIN_API_URL",
	Timeout: "ADMIN_API_TIMEOUT",
}

var sessionEnv = &session.Env{
	Path: "ADMIN_SESSION_PATH",
}

var uploadEnv = &attachment.Env{
	MaxSize: "ADMIN_UPLOAD_MAX_SIZE",
}

var loggingEnv = &logging.Env{
	Level:  "ADMIN_LOG_LEVEL",
	Format: "ADMIN_LOG_FORMAT",
	Source: "ADMIN_LOG_SOURCE",
}

// Config represents the root console configuration.
type Config struct {
	Client  client.Config     `toml:"client"`
	Session session.Config    `toml:"session"`
	Upload  attachment.Config `toml:"upload"`
	Logging logging.Config    `toml:"logging"`
}

// Load reads the base configuration file and applies any environment-specific
// overlay. A missing base file yields an empty configuration so the console
// runs on defaults and environment overrides alone.
func Load() (*Config, error) {
	base := BaseConfigFile
	if v := os.Getenv(EnvAdminConfig); v != "" {
		base = v
	}

	cfg, err := load(base)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if path := overlayPath(filepath.Dir(base)); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	if err := c.Client.Finalize(clientEnv); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	if err := c.Session.Finalize(sessionEnv); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Upload.Finalize(uploadEnv); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Client.Merge(&overlay.Client)
	c.Session.Merge(&overlay.Session)
	c.Upload.Merge(&overlay.Upload)
	c.Logging.Merge(&overlay.Logging)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvAdminEnv); env != "" {
		overlayPath := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
