package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the service configuration. Values come from Default, then the
// optional TOML file, then REFORMED_* environment variables.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Converter ConverterConfig `toml:"converter"`
	History   HistoryConfig   `toml:"history"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port            int      `toml:"port"`
	Workers         int      `toml:"workers"`
	MaxBufferSize   int64    `toml:"max_buffer_size"`
	ShutdownTimeout int      `toml:"shutdown_timeout"` // seconds
	CORSOrigins     []string `toml:"cors_origins"`
}

type ConverterConfig struct {
	Pandoc             string `toml:"pandoc"`
	Timeout            int    `toml:"timeout"` // seconds, 0 disables
	MaxDiagnosticBytes int    `toml:"max_diagnostic_bytes"`
	WorkspaceRoot      string `toml:"workspace_root"`
}

// HistoryConfig enables the conversion history store when DBPath is set.
type HistoryConfig struct {
	DBPath string `toml:"db_path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads path (if non-empty and present) over the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.Server.Port) }

func (c *Config) ConversionTimeout() time.Duration {
	return time.Duration(c.Converter.Timeout) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

// HistoryEnabled reports whether conversions are recorded.
func (c *Config) HistoryEnabled() bool { return c.History.DBPath != "" }
