package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Remote API
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// App
	Env string `mapstructure:"APP_ENV"` // development | production

	// Session persistence (the browser-localStorage analog)
	SessionFile string `mapstructure:"SESSION_FILE"`

	// Screens
	PageSize          int `mapstructure:"PAGE_SIZE"`
	SearchDebounceMs  int `mapstructure:"SEARCH_DEBOUNCE_MS"`
	MessageTTLSeconds int `mapstructure:"MESSAGE_TTL_SECONDS"`

	// Circuit breaker over the remote API
	CBFailureThreshold   int `mapstructure:"CB_FAILURE_THRESHOLD"`
	CBOpenTimeoutSeconds int `mapstructure:"CB_OPEN_TIMEOUT_SECONDS"`

	// Exports (server-generated CSV/PDF land here)
	ExportDir string `mapstructure:"EXPORT_DIR"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SESSION_FILE", defaultSessionFile())
	viper.SetDefault("PAGE_SIZE", 20)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	viper.SetDefault("MESSAGE_TTL_SECONDS", 4)
	viper.SetDefault("CB_FAILURE_THRESHOLD", 5)
	viper.SetDefault("CB_OPEN_TIMEOUT_SECONDS", 60)
	viper.SetDefault("EXPORT_DIR", "/tmp/posfacturard/exports")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "posfacturard", "session.json")
	}
	return filepath.Join(dir, "posfacturard", "session.json")
}
