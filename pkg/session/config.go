package session

import (
	"fmt"
	"os"
)

// Env maps environment variable names for session configuration.
type Env struct {
	Path string
}

// Config locates the persisted session file.
type Config struct {
	// Path is the session file location.
	// Default: ".data/session.toml"
	Path string `toml:"path"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *Config) loadDefaults() {
	if c.Path == "" {
		c.Path = ".data/session.toml"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
}

func (c *Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("path required")
	}
	return nil
}
