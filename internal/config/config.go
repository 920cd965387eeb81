// Package config handles runtime configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the widget runtime and the demo daemon.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Client  ClientConfig
	Widget  WidgetDefaults
	Log     LogConfig
}

// ServerConfig holds the demo daemon's server configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig holds session persistence configuration.
type StorageConfig struct {
	// Type selects the store backend: "file", "redis" or "memory".
	Type string
	// Dir is the directory for the file store. Empty means a
	// "pfc-widget" directory under the user config dir.
	Dir string
}

// RedisConfig holds Redis connection configuration for the redis store.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ClientConfig holds messaging client configuration.
type ClientConfig struct {
	// Timeout bounds one outbound query. A timed-out request resolves to
	// an error message like any other transport failure.
	Timeout time.Duration
}

// WidgetDefaults holds build-time widget defaults, overridable per instance
// through element attributes or explicit configure calls.
type WidgetDefaults struct {
	Endpoint string
	Greeting string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Storage: StorageConfig{
			Type: getEnv("STORAGE_TYPE", "file"),
			Dir:  getEnv("STORAGE_DIR", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Client: ClientConfig{
			Timeout: time.Duration(getEnvAsInt("CLIENT_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Widget: WidgetDefaults{
			Endpoint: getEnv("WIDGET_ENDPOINT", "/api/widget/query"),
			Greeting: getEnv("WIDGET_GREETING", "Hi! Ask me anything about this site."),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
