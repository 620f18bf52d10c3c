package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", "app:\n  env: test\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "test", cfg.App.Env)
		assert.Equal(t, "info", cfg.App.LogLevel)
		assert.Equal(t, DefaultContactPath, cfg.Contacts.Path)
		assert.Equal(t, DefaultInfected, cfg.Contacts.Infected)
		assert.False(t, cfg.Contacts.TrimSentinels)
		assert.Equal(t, DefaultHTTPAddr, cfg.Serve.HTTPAddr)
	})

	t.Run("explicit values win", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
contacts:
  path: /tmp/other_list
  trim_sentinels: true
  infected:
    - id-one
    - id-two
    - id-three
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other_list", cfg.Contacts.Path)
		assert.True(t, cfg.Contacts.TrimSentinels)
		assert.Equal(t, []string{"id-one", "id-two", "id-three"}, cfg.Contacts.Infected)
	})

	t.Run("include merge, main file overrides", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "base.yaml", "app:\n  log_level: debug\ncontacts:\n  path: base_list\n")
		main := writeConfig(t, dir, "config.yaml", "include:\n  - base.yaml\ncontacts:\n  path: main_list\n")
		cfg, err := Load(main)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.App.LogLevel)
		assert.Equal(t, "main_list", cfg.Contacts.Path)
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("invalid log level rejected", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", "app:\n  log_level: loud\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "log_level")
	})

	t.Run("duplicate infected ids rejected", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
contacts:
  infected:
    - same-id
    - same-id
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty infected id rejected", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
contacts:
  infected:
    - ""
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestDump(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "app:\n  env: test\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	dump := cfg.Dump()
	assert.Contains(t, dump, "test")
	assert.Contains(t, dump, DefaultContactPath)
}
