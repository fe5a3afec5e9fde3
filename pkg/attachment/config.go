package attachment

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// DefaultMaxSize is the selection ceiling when none is configured.
const DefaultMaxSize = "5MiB"

// Env maps environment variable names for attachment configuration.
type Env struct {
	MaxSize string
}

// Config bounds attachment selections.
type Config struct {
	// MaxSize is a human-readable size; binary suffixes are honored ("5MiB").
	MaxSize    string `toml:"max_size"`
	maxSizeVal int64
}

// MaxSizeBytes returns the parsed ceiling. Valid after Finalize.
func (c *Config) MaxSizeBytes() int64 {
	return c.maxSizeVal
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
	if size, err := units.RAMInBytes(overlay.MaxSize); err == nil {
		c.MaxSize = overlay.MaxSize
		c.maxSizeVal = size
	}
}

func (c *Config) loadDefaults() {
	if c.MaxSize == "" {
		c.MaxSize = DefaultMaxSize
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxSize != "" {
		if v := os.Getenv(env.MaxSize); v != "" {
			c.MaxSize = v
		}
	}
}

func (c *Config) validate() error {
	size, err := units.RAMInBytes(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size
	return nil
}
