package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Backend API
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	APIToken   string `mapstructure:"API_TOKEN"`
	// HTTPTimeoutSeconds bounds each request; 0 disables the client timeout
	// (cancellation then happens only through the per-call context).
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Business
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`

	Env string `mapstructure:"APP_ENV"` // development | production
}

// HTTPTimeout returns the configured timeout as a duration (0 = none).
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 0)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/smileops/pedidos")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
