// Package config provides configuration loading and validation for the job portal server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultMaxUploadBytes is the largest resume accepted for analysis.
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// Config is the server configuration. Values come from (lowest to highest
// precedence) built-in defaults, an optional config file, and environment
// variables named after the upper-cased keys.
type Config struct {
	Env            string        `mapstructure:"app_env"`
	Port           int           `mapstructure:"port"`
	DatabaseURL    string        `mapstructure:"database_url"`
	RedisURL       string        `mapstructure:"redis_url"`
	FrontendURL    string        `mapstructure:"frontend_url"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	UploadDir      string        `mapstructure:"upload_dir"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	JobCacheTTL    time.Duration `mapstructure:"job_cache_ttl"`
	MetricsEnabled bool          `mapstructure:"metrics_enabled"`
	DBConnectTries int           `mapstructure:"db_connect_tries"`
	DBRetryDelay   time.Duration `mapstructure:"db_retry_delay"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures per-client request limits. Environment
// variables use the RATE_LIMIT_ prefix, e.g. RATE_LIMIT_DEFAULT_LIMIT.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvDevelopment)
	v.SetDefault("port", 5000)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("frontend_url", "http://localhost:3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("upload_dir", "")
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("job_cache_ttl", 5*time.Minute)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("db_connect_tries", 5)
	v.SetDefault("db_retry_delay", 5*time.Second)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
}

// Load reads configuration. A .env file in the working directory is
// loaded first if present; path, when non-empty, names a YAML, JSON or
// TOML config file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = os.TempDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// DATABASE_URL is not checked here because only the serve and migrate
// commands need it.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'port' must be 1-65535, got %d", c.Port))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'max_upload_bytes' must be positive"))
	}
	if c.JobCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("config error: 'job_cache_ttl' must be non-negative"))
	}
	if c.DBConnectTries < 1 {
		errs = append(errs, fmt.Errorf("config error: 'db_connect_tries' must be at least 1"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 1 || c.RateLimit.DefaultWindow <= 0) {
		errs = append(errs, fmt.Errorf("config error: 'rate_limit' needs a positive default_limit and default_window"))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("config error: 'log_format' must be console or json, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}
