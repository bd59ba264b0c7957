package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "WORKERS", "MAX_BUFFER_SIZE", "CORS_ORIGINS", "PANDOC", "TIMEOUT", "WORKSPACE_ROOT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(envPrefix+k, "")
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "reformed.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Server.Workers)
	assert.Equal(t, int64(25*1024*1024), cfg.Server.MaxBufferSize)
	assert.Equal(t, "pandoc", cfg.Converter.Pandoc)
	assert.Equal(t, 2*time.Minute, cfg.ConversionTimeout())
	assert.False(t, cfg.HistoryEnabled())
	assert.Equal(t, ":8000", cfg.HTTPAddr())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
[server]
port = 9100
workers = 4

[converter]
pandoc = "/opt/pandoc/bin/pandoc"
timeout = 30

[history]
db_path = "/var/lib/reformed/history.db"

[logging]
level = "DEBUG"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Server.Workers)
	assert.Equal(t, int64(DefaultMaxBufferSize), cfg.Server.MaxBufferSize)
	assert.Equal(t, "/opt/pandoc/bin/pandoc", cfg.Converter.Pandoc)
	assert.Equal(t, 30*time.Second, cfg.ConversionTimeout())
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "[server]\nport = 9100\n")
	t.Setenv("REFORMED_PORT", "9200")
	t.Setenv("REFORMED_WORKERS", "8")
	t.Setenv("REFORMED_MAX_BUFFER_SIZE", "1024")
	t.Setenv("REFORMED_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REFORMED_TIMEOUT", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Server.Workers)
	assert.Equal(t, int64(1024), cfg.Server.MaxBufferSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DefaultTimeout, cfg.Converter.Timeout)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "[server\nport = ")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := map[string]func(*Config){
		"port":     func(c *Config) { c.Server.Port = 0 },
		"workers":  func(c *Config) { c.Server.Workers = 0 },
		"buffer":   func(c *Config) { c.Server.MaxBufferSize = 0 },
		"pandoc":   func(c *Config) { c.Converter.Pandoc = "" },
		"timeout":  func(c *Config) { c.Converter.Timeout = -1 },
		"level":    func(c *Config) { c.Logging.Level = "loud" },
		"format":   func(c *Config) { c.Logging.Format = "xml" },
		"shutdown": func(c *Config) { c.Server.ShutdownTimeout = -5 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestWatchReloads(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "[logging]\nlevel = \"info\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(c *Config) {
			select {
			case changes <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644))

	// A truncating write may surface an empty file first.
	deadline := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case cfg := <-changes:
			reloaded = cfg.Logging.Level == "debug"
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
