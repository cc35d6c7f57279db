// Package config loads scorer configuration from an optional YAML/JSON file and
// RESUME_SCORER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix; nested keys join with "_"
// (server.port is RESUME_SCORER_SERVER_PORT)
const EnvPrefix = "RESUME_SCORER"

// Cache backends
const (
	CacheMemory   = "memory"
	CachePostgres = "postgres"
	CacheNone     = "none"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Grammar GrammarConfig `mapstructure:"grammar"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64           `mapstructure:"max_body_bytes"`
	CORSOrigins     []string        `mapstructure:"cors_origins"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures per-client token buckets
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// CacheConfig selects and configures the cache backend
type CacheConfig struct {
	Backend     string        `mapstructure:"backend"`
	TTL         time.Duration `mapstructure:"ttl"`
	DatabaseURL string        `mapstructure:"database_url"`
}

// GrammarConfig configures the LanguageTool collaborator. An empty URL disables it.
type GrammarConfig struct {
	URL      string               `mapstructure:"url"`
	Language string               `mapstructure:"language"`
	Timeout  time.Duration        `mapstructure:"timeout"`
	Breaker  CircuitBreakerConfig `mapstructure:"breaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

// FetchConfig configures job posting downloads
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ScoringConfig holds scoring defaults
type ScoringConfig struct {
	DefaultLevel     string `mapstructure:"default_level"`
	BatchConcurrency int    `mapstructure:"batch_concurrency"`
	MaxBatchSize     int    `mapstructure:"max_batch_size"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", int64(2<<20))
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rps", 10.0)
	v.SetDefault("server.rate_limit.burst", 20)

	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.database_url", "")

	v.SetDefault("grammar.url", "")
	v.SetDefault("grammar.language", "en-US")
	v.SetDefault("grammar.timeout", 5*time.Second)
	v.SetDefault("grammar.breaker.enabled", true)
	v.SetDefault("grammar.breaker.max_requests", 1)
	v.SetDefault("grammar.breaker.interval", time.Minute)
	v.SetDefault("grammar.breaker.timeout", 30*time.Second)
	v.SetDefault("grammar.breaker.min_requests", 5)
	v.SetDefault("grammar.breaker.failure_threshold", 0.5)

	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; ResumeScorer/1.0)")

	v.SetDefault("scoring.default_level", "intermediary")
	v.SetDefault("scoring.batch_concurrency", 4)
	v.SetDefault("scoring.max_batch_size", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration. An explicit path must exist; without one the file
// "resume-scorer.{yaml,json}" is looked up in the working directory and
// $HOME/.resume-scorer, and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resume-scorer")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.resume-scorer")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with no file and no environment applied
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.RPS <= 0 || c.Server.RateLimit.Burst <= 0) {
		return fmt.Errorf("config error: server.rate_limit.rps and burst must be positive when rate limiting is enabled")
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CachePostgres:
		if c.Cache.DatabaseURL == "" {
			return fmt.Errorf("config error: cache.database_url is required for the postgres cache backend")
		}
	default:
		return fmt.Errorf("config error: cache.backend must be memory, postgres or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config error: cache.ttl must be non-negative")
	}

	if c.Grammar.URL != "" && c.Grammar.Timeout <= 0 {
		return fmt.Errorf("config error: grammar.timeout must be positive")
	}
	if t := c.Grammar.Breaker.FailureThreshold; c.Grammar.Breaker.Enabled && (t <= 0 || t > 1) {
		return fmt.Errorf("config error: grammar.breaker.failure_threshold must be in (0, 1], got %v", t)
	}

	if c.Scoring.BatchConcurrency <= 0 {
		return fmt.Errorf("config error: scoring.batch_concurrency must be positive")
	}
	if c.Scoring.MaxBatchSize <= 0 {
		return fmt.Errorf("config error: scoring.max_batch_size must be positive")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config error: log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Addr is the server listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
