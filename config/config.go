package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	API         APIConfig         `mapstructure:"api"`
	Aggregator  AggregatorConfig  `mapstructure:"aggregator"`
	Search      SearchConfig      `mapstructure:"search"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Transport      string   `mapstructure:"transport"` // "stdio" or "http"
}

// APIConfig holds the nutrition database client configuration
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        uint          `mapstructure:"max_retries"`
}

// AggregatorConfig holds recipe aggregation configuration
type AggregatorConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

// SearchConfig holds search ranking configuration
type SearchConfig struct {
	FuzzyMatching     bool `mapstructure:"fuzzy_matching"`
	FuzzyEditDistance int  `mapstructure:"fuzzy_edit_distance"`
}

// PreferencesConfig holds language preference storage configuration
type PreferencesConfig struct {
	Type       string `mapstructure:"type"` // "memory" or "sqlite"
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

var (
	transports      = []string{"stdio", "http"}
	preferenceTypes = []string{"memory", "sqlite"}
	logFormats      = []string{"json", "console"}
)

// Load loads configuration from environment variables and config files.
// A non-empty path replaces the config file search.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/nutrimcp/")
	}

	// Environment variable settings
	v.SetEnvPrefix("NUTRIMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.transport", "stdio")

	// Nutrition database defaults
	v.SetDefault("api.base_url", "https://api.webapp.prod.blv.foodcase-services.com/BLV_WebApp_WS/webresources/BLV-api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.requests_per_second", 10)
	v.SetDefault("api.burst", 20)
	v.SetDefault("api.max_retries", 2)

	// Aggregation defaults
	v.SetDefault("aggregator.max_concurrency", 8)

	// Search defaults
	v.SetDefault("search.fuzzy_matching", true)
	v.SetDefault("search.fuzzy_edit_distance", 1)

	// Preference store defaults
	v.SetDefault("preferences.type", "memory")
	v.SetDefault("preferences.sqlite_path", "nutrimcp.db")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if !slices.Contains(transports, config.Server.Transport) {
		return fmt.Errorf("server transport must be 'stdio' or 'http', got: %s", config.Server.Transport)
	}

	u, err := url.Parse(config.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API base URL must be an absolute http(s) URL, got: %q", config.API.BaseURL)
	}

	if config.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive, got: %v", config.API.Timeout)
	}

	if config.API.RequestsPerSecond <= 0 || config.API.Burst <= 0 {
		return fmt.Errorf("API rate limit must be positive, got: %v/s burst %d", config.API.RequestsPerSecond, config.API.Burst)
	}

	if config.Aggregator.MaxConcurrency < 0 {
		return fmt.Errorf("aggregator max concurrency must not be negative, got: %d", config.Aggregator.MaxConcurrency)
	}

	if !slices.Contains(preferenceTypes, config.Preferences.Type) {
		return fmt.Errorf("preferences type must be 'memory' or 'sqlite', got: %s", config.Preferences.Type)
	}

	if config.Preferences.Type == "sqlite" && config.Preferences.SQLitePath == "" {
		return fmt.Errorf("SQLite path is required when preferences type is 'sqlite'")
	}

	if !slices.Contains(logFormats, config.Log.Format) {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	return nil
}
