package config

import (
	"os"
	"strconv"
	"strings"
)

const envPrefix = "REFORMED_"

func (c *Config) applyEnv() {
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.Workers = getEnvInt("WORKERS", c.Server.Workers)
	c.Server.MaxBufferSize = getEnvInt64("MAX_BUFFER_SIZE", c.Server.MaxBufferSize)
	if origins := splitAndTrim(getEnv("CORS_ORIGINS", "")); len(origins) > 0 {
		c.Server.CORSOrigins = origins
	}
	c.Converter.Pandoc = getEnv("PANDOC", c.Converter.Pandoc)
	c.Converter.Timeout = getEnvInt("TIMEOUT", c.Converter.Timeout)
	c.Converter.WorkspaceRoot = getEnv("WORKSPACE_ROOT", c.Converter.WorkspaceRoot)
	c.History.DBPath = getEnv("DB_PATH", c.History.DBPath)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Converter.Pandoc = strings.TrimSpace(c.Converter.Pandoc)
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return def
	}
	return i
}
