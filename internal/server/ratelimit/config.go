package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/resume-scorer/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string  // Endpoint path pattern (supports prefix matching)
	Method string  // HTTP method (GET, POST, etc.)
	RPS    float64 // Sustained requests per second; 0 means unlimited
	Burst  int     // Burst capacity (defaults to ceil(RPS) if 0)
}

// DefaultConfig returns a limiter configuration suitable for local use.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultRPS:      10,
		DefaultBurst:    20,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// FromServerConfig builds the limiter configuration from the loaded server settings.
func FromServerConfig(rl config.RateLimitConfig) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = rl.Enabled
	if rl.RPS > 0 {
		cfg.DefaultRPS = rl.RPS
	}
	if rl.Burst > 0 {
		cfg.DefaultBurst = rl.Burst
	}
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	perMinute := func(n float64) float64 { return n / 60 }
	return []EndpointConfig{
		// Batch scoring fans out across many resumes
		{Path: "/score/batch", Method: http.MethodPost, RPS: perMinute(30), Burst: 3},
		{Path: "/cache", Method: http.MethodDelete, RPS: perMinute(6), Burst: 1},
	}
}
