// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.yaml"
)

// Duration is a time.Duration that reads "30s"-style strings from JSON and YAML.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("duration must be a string or nanoseconds: %w", err)
		}
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// ProviderConfig tunes a single upstream provider.
type ProviderConfig struct {
	BaseURL   string `json:"BASE_URL" yaml:"base_url"`
	Referer   string `json:"REFERER" yaml:"referer"`
	RateLimit int    `json:"RATE_LIMIT" yaml:"rate_limit"`
	Burst     int    `json:"BURST" yaml:"burst"`
}

// Config holds the application configuration.
// It supports loading from a JSON or YAML file and environment variables.
type Config struct {
	Port     string `json:"PORT" yaml:"port"`
	LogLevel string `json:"LOG_LEVEL" yaml:"log_level"`

	// Event store
	EventsFeedURL   string   `json:"EVENTS_FEED_URL" yaml:"events_feed_url"`
	ImagesFile      string   `json:"IMAGES_FILE" yaml:"images_file"`
	RefreshInterval Duration `json:"REFRESH_INTERVAL" yaml:"refresh_interval"`
	DatabasePath    string   `json:"DATABASE_PATH" yaml:"database_path"`
	CacheSize       int      `json:"CACHE_SIZE" yaml:"cache_size"`

	// Stream resolution
	ResolverTimeout     Duration                  `json:"RESOLVER_TIMEOUT" yaml:"resolver_timeout"`
	ResolverConcurrency int                       `json:"RESOLVER_CONCURRENCY" yaml:"resolver_concurrency"`
	RequestTimeout      Duration                  `json:"REQUEST_TIMEOUT" yaml:"request_timeout"`
	BrowserEnabled      bool                      `json:"BROWSER_ENABLED" yaml:"browser_enabled"`
	Providers           map[string]ProviderConfig `json:"PROVIDERS" yaml:"providers"`

	MetricsEnabled bool `json:"METRICS_ENABLED" yaml:"metrics_enabled"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:                constants.DefaultPort,
		LogLevel:            constants.DefaultLogLevel,
		RefreshInterval:     Duration(constants.RefreshInterval),
		DatabasePath:        constants.DefaultDatabasePath,
		CacheSize:           constants.DefaultCacheSize,
		ResolverTimeout:     Duration(constants.ResolverTimeout),
		ResolverConcurrency: constants.ResolverConcurrency,
		RequestTimeout:      Duration(constants.RequestTimeout),
		MetricsEnabled:      true,
		Providers: map[string]ProviderConfig{
			constants.ProviderStreamTP: {BaseURL: "https://streamtpglobal.com/global1.php", Referer: "https://streamtpglobal.com/"},
			constants.ProviderLa12HD:   {BaseURL: "https://la12hd.com/vivo/canal.php", Referer: "https://la12hd.com/"},
			constants.ProviderEnVivo:   {BaseURL: "https://1envivo.com/canal.php", Referer: "https://1envivo.com/"},
		},
	}
}

// Load reads configuration from an optional .env, an optional config file and
// environment variables. Environment variables take precedence over file values.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("[Config] failed to load .env: %v", err)
	}

	cfg := Default()

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		// Ignore file not found errors
		if !os.IsNotExist(err) {
			return nil, apperrors.NewConfigurationError("failed to load config file "+configFile, err)
		}
	} else {
		log.Infof("[Config] loaded %s", configFile)
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, apperrors.NewConfigurationError("invalid environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigurationError("invalid config", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a JSON or YAML file, chosen by extension.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	default:
		return json.Unmarshal(data, c)
	}
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.EventsFeedURL, "EVENTS_FEED_URL")
	setString(&c.ImagesFile, "IMAGES_FILE")
	setString(&c.DatabasePath, "DATABASE_PATH")

	for key, target := range map[string]*Duration{
		"REFRESH_INTERVAL": &c.RefreshInterval,
		"RESOLVER_TIMEOUT": &c.ResolverTimeout,
		"REQUEST_TIMEOUT":  &c.RequestTimeout,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*target = Duration(d)
		}
	}

	for key, target := range map[string]*int{
		"RESOLVER_CONCURRENCY": &c.ResolverConcurrency,
		"CACHE_SIZE":           &c.CacheSize,
	} {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*target = n
		}
	}

	for key, target := range map[string]*bool{
		"BROWSER_ENABLED": &c.BrowserEnabled,
		"METRICS_ENABLED": &c.MetricsEnabled,
	} {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*target = b
		}
	}

	return nil
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	if c.EventsFeedURL == "" {
		return fmt.Errorf("EVENTS_FEED_URL is required")
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}

	if c.ResolverConcurrency <= 0 {
		c.ResolverConcurrency = constants.ResolverConcurrency
	}
	if c.ResolverTimeout <= 0 {
		c.ResolverTimeout = Duration(constants.ResolverTimeout)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = Duration(constants.RequestTimeout)
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = Duration(constants.RefreshInterval)
	}
	if c.CacheSize <= 0 {
		c.CacheSize = constants.DefaultCacheSize
	}

	for id, p := range c.Providers {
		if p.BaseURL == "" {
			return fmt.Errorf("provider %s: base_url is required", id)
		}
		if p.RateLimit <= 0 {
			p.RateLimit = constants.ProviderRateLimit
		}
		if p.Burst <= 0 {
			p.Burst = constants.ProviderRateBurst
		}
		c.Providers[id] = p
	}

	return nil
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
