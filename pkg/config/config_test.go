package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "127.0.0.1", config.Server.Bind)
	assert.Equal(t, 8080, config.Server.Port)
	assert.True(t, config.Embed.ECC)
	assert.False(t, config.Embed.Compress)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "meow_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		content := "server:\n  bind: 0.0.0.0\n  port: 9000\nembed:\n  ecc: false\n  compress: true\nlogging:\n  level: debug\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", config.Server.Bind)
		assert.Equal(t, 9000, config.Server.Port)
		assert.False(t, config.Embed.ECC)
		assert.True(t, config.Embed.Compress)
		assert.Equal(t, "debug", config.Logging.Level)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/meow.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "meow_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("server: [not: valid"), 0600))

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "meow_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "nested", "config.yaml")
	config := DefaultConfig()
	config.Server.Port = 9999
	config.Embed.Compress = true

	require.NoError(t, SaveConfig(config, configPath))
	assert.True(t, ConfigExists(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
