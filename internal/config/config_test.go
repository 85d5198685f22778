package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfulz/strategist/internal/configloader"
	"github.com/mfulz/strategist/internal/logging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  to_stdout: false
  to_file: true
  file: /tmp/strategist.log
dispatch:
  seal: false
  cache: true
  cache_ttl: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.ToStdout)
	assert.True(t, cfg.Log.ToFile)
	assert.Equal(t, "/tmp/strategist.log", cfg.Log.FilePath)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset keys keep defaults")
	assert.False(t, cfg.Dispatch.Seal)
	assert.True(t, cfg.Dispatch.Cache)
	assert.Equal(t, 90*time.Second, cfg.Dispatch.CacheTTL)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(configloader.EnvConfig, "")
	t.Setenv("HOME", t.TempDir())

	if _, err := os.Stat(filepath.Join("/etc/strategist", FileName)); err == nil {
		t.Skip("system config present")
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.ToStdout)
	assert.True(t, cfg.Dispatch.Seal)
	assert.False(t, cfg.Dispatch.Cache)
	assert.Zero(t, cfg.Dispatch.CacheTTL)
}

func TestLoad_EnvPath(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv(configloader.EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error loading config")

	_, err = Load(writeConfig(t, "dispatch:\n  cache_ttl: -1s\n"))
	assert.ErrorContains(t, err, "cache_ttl")

	_, err = Load(writeConfig(t, "log: [unterminated\n"))
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	prev, hadPrev := configloader.TryGetConfig[*logging.Config]()
	t.Cleanup(func() {
		if hadPrev {
			configloader.SetConfig(prev)
		}
	})

	cfg := &Config{Log: logging.Config{Level: "error"}}
	Publish(cfg)

	assert.Same(t, cfg, configloader.MustGetConfig[*Config]())
	assert.Same(t, &cfg.Log, configloader.MustGetConfig[*logging.Config]())
}
