package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/vetting"
)

// Config represents the application configuration.
type Config struct {
	Environment string             `toml:"environment"` // "development" or "production"
	Server      ServerConfig       `toml:"server"`
	Logging     LoggingConfig      `toml:"logging"`
	Provider    ProviderConfig     `toml:"provider"`
	Cache       CacheConfig        `toml:"cache"`
	Vetting     vetting.Thresholds `toml:"vetting"` // threshold overrides, validated at startup
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// ProviderConfig controls the upstream nonprofit-data client.
type ProviderConfig struct {
	BaseURL           string        `toml:"base_url"`
	RequestTimeout    time.Duration `toml:"request_timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"` // upstream request budget
	Burst             int           `toml:"burst"`
	MaxRetries        int           `toml:"max_retries"`
	RetryBackoff      time.Duration `toml:"retry_backoff"`
	UserAgent         string        `toml:"user_agent"`
}

// CacheConfig controls the raw-payload cache. Only upstream provider
// responses are cached; evaluation results are never persisted.
type CacheConfig struct {
	Enabled   bool         `toml:"enabled"`
	MaxAge    time.Duration `toml:"max_age"`
	Badger    BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration.
type BadgerConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// NewDefaultConfig returns configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		Provider: ProviderConfig{
			BaseURL:           "https://projects.propublica.org/nonprofits/api/v2",
			RequestTimeout:    30 * time.Second,
			RequestsPerSecond: 1,
			Burst:             3,
			MaxRetries:        3,
			RetryBackoff:      2 * time.Second,
			UserAgent:         "npvet/" + Version,
		},
		Cache: CacheConfig{
			Enabled: true,
			MaxAge:  24 * time.Hour,
			Badger: BadgerConfig{
				Path:           "./data/cache",
				ResetOnStartup: false,
			},
		},
		Vetting: vetting.DefaultThresholds(),
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files
// override earlier ones, environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies NPVET_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NPVET_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("NPVET_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("NPVET_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("NPVET_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("NPVET_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("NPVET_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if baseURL := os.Getenv("NPVET_PROVIDER_BASE_URL"); baseURL != "" {
		config.Provider.BaseURL = baseURL
	}
	if timeout := os.Getenv("NPVET_PROVIDER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Provider.RequestTimeout = d
		}
	}
	if rps := os.Getenv("NPVET_PROVIDER_REQUESTS_PER_SECOND"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil && r > 0 {
			config.Provider.RequestsPerSecond = r
		}
	}
	if retries := os.Getenv("NPVET_PROVIDER_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n >= 0 {
			config.Provider.MaxRetries = n
		}
	}

	if enabled := os.Getenv("NPVET_CACHE_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Cache.Enabled = e
		}
	}
	if maxAge := os.Getenv("NPVET_CACHE_MAX_AGE"); maxAge != "" {
		if d, err := time.ParseDuration(maxAge); err == nil {
			config.Cache.MaxAge = d
		}
	}
	if path := os.Getenv("NPVET_BADGER_PATH"); path != "" {
		config.Cache.Badger.Path = path
	}
}
