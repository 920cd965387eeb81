package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfcsearch/widget-runtime/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Type)
	assert.Equal(t, "/api/widget/query", cfg.Widget.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Widget.Greeting)
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("CLIENT_TIMEOUT_SECONDS", "5")
	t.Setenv("WIDGET_ENDPOINT", "https://ask.example.com/query")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "https://ask.example.com/query", cfg.Widget.Endpoint)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_PORT", "not-a-number")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
