package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plangrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
chains:
  max_depth: 25
files:
  extensions: [".plan"]
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, 25, s.Chains.MaxDepth)
	assert.Equal(t, 128, s.Cache.Size, "unset keys keep their defaults")
	assert.Equal(t, []string{".plan"}, s.Files.Extensions)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "chains:\n  max_depth: 25\n")
	t.Setenv("PLANGRID_CHAINS_MAX_DEPTH", "7")
	t.Setenv("PLANGRID_LOG_LEVEL", "warn")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Chains.MaxDepth)
	assert.Equal(t, "warn", s.Log.Level)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *s)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "log:\n  level: loud\ncache:\n  size: 0\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log.level")
		assert.Contains(t, err.Error(), "cache.size 0 must be positive")
	})
}
