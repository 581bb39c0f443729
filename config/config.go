package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Search    SearchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Storage   StorageConfig
	Log       LogConfig
	Engine    EngineConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8000
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance used for fallback fetches.
type BrowserConfig struct {
	// Enabled toggles launching a browser at startup. When false (or when
	// the launch fails) the service runs with the HTTP engine only.
	Enabled bool // default: true

	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 6

	// Proxy is the default proxy URL for browser traffic.
	Proxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string

	// NavigationTimeout is the max time for page navigation alone.
	NavigationTimeout time.Duration // default: 15s

	// BlockedResourceTypes lists resource types the hijack router blocks.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// SearchConfig controls search fan-out behavior.
type SearchConfig struct {
	// Timeout is the deadline for one whole search (all platforms).
	Timeout time.Duration // default: 30s

	// MaxTimeout caps the per-search deadline.
	MaxTimeout time.Duration // default: 120s

	// DefaultMaxResults is the per-platform result cap when the client
	// does not provide max_results.
	DefaultMaxResults int // default: 5

	// Dedupe enables near-duplicate title suppression within a platform's
	// result set.
	Dedupe bool // default: true
}

// EngineConfig controls the multi-engine escalation dispatcher.
type EngineConfig struct {
	// EscalationDelays is the staged start delay for each engine tier.
	EscalationDelays []time.Duration // default: [0s, 2s, 5s]

	// HTTPTimeout is the deadline for the pure HTTP engine.
	HTTPTimeout time.Duration // default: 8s

	// DomainMemoryTTL is how long a winning engine is remembered per domain.
	DomainMemoryTTL time.Duration // default: 24h
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication. The API is open by default.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the search response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000

	// TTL is how long a cached search response stays valid.
	// Zero disables caching.
	TTL time.Duration // default: 5m
}

// StorageConfig controls optional price-history persistence.
type StorageConfig struct {
	// Driver selects the backend: "" (disabled) or "sqlite".
	Driver string

	// DSN is the backend connection string (file path for sqlite).
	DSN string // default: "hype.db"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("HYPE_HOST", "0.0.0.0"),
			Port: envIntOr("HYPE_PORT", 8000),
			Mode: envOr("HYPE_MODE", "release"),
		},
		Browser: BrowserConfig{
			Enabled:           envBoolOr("HYPE_BROWSER_ENABLED", true),
			Headless:          envBoolOr("HYPE_HEADLESS", true),
			MaxPages:          envIntOr("HYPE_MAX_PAGES", 6),
			Proxy:             os.Getenv("HYPE_PROXY"),
			NoSandbox:         envBoolOr("HYPE_NO_SANDBOX", false),
			Bin:               os.Getenv("HYPE_BROWSER_BIN"),
			NavigationTimeout: envDurationOr("HYPE_NAV_TIMEOUT", 15*time.Second),
			BlockedResourceTypes: envSliceOr("HYPE_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Search: SearchConfig{
			Timeout:           envDurationOr("HYPE_SEARCH_TIMEOUT", 30*time.Second),
			MaxTimeout:        envDurationOr("HYPE_MAX_TIMEOUT", 120*time.Second),
			DefaultMaxResults: envIntOr("HYPE_DEFAULT_MAX_RESULTS", 5),
			Dedupe:            envBoolOr("HYPE_DEDUPE", true),
		},
		Engine: EngineConfig{
			EscalationDelays: envDurationSliceOr("HYPE_ESCALATION_DELAYS", []time.Duration{0, 2 * time.Second, 5 * time.Second}),
			HTTPTimeout:      envDurationOr("HYPE_HTTP_TIMEOUT", 8*time.Second),
			DomainMemoryTTL:  envDurationOr("HYPE_DOMAIN_MEMORY_TTL", 24*time.Hour),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("HYPE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("HYPE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("HYPE_RATE_RPS", 5.0),
			Burst:             envIntOr("HYPE_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("HYPE_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("HYPE_CACHE_TTL", 5*time.Minute),
		},
		Storage: StorageConfig{
			Driver: envOr("HYPE_STORAGE_DRIVER", ""),
			DSN:    envOr("HYPE_STORAGE_DSN", "hype.db"),
		},
		Log: LogConfig{
			Level:  envOr("HYPE_LOG_LEVEL", "info"),
			Format: envOr("HYPE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

func envDurationSliceOr(key string, fallback []time.Duration) []time.Duration {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]time.Duration, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				if d, err := time.ParseDuration(trimmed); err == nil {
					result = append(result, d)
				}
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
