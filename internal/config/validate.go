package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ErrInvalid marks a configuration value outside its accepted range.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks that every value is usable by the server.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535 (got %d)", ErrInvalid, c.Server.Port)
	}
	if c.Server.Workers < 1 {
		return fmt.Errorf("%w: server.workers must be positive (got %d)", ErrInvalid, c.Server.Workers)
	}
	if c.Server.MaxBufferSize < 1 {
		return fmt.Errorf("%w: server.max_buffer_size must be positive (got %d)", ErrInvalid, c.Server.MaxBufferSize)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must not be negative", ErrInvalid)
	}
	if c.Converter.Pandoc == "" {
		return fmt.Errorf("%w: converter.pandoc must be set", ErrInvalid)
	}
	if c.Converter.Timeout < 0 {
		return fmt.Errorf("%w: converter.timeout must not be negative", ErrInvalid)
	}
	if c.Converter.MaxDiagnosticBytes < 0 {
		return fmt.Errorf("%w: converter.max_diagnostic_bytes must not be negative", ErrInvalid)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json (got %q)", ErrInvalid, c.Logging.Format)
	}
	return nil
}
