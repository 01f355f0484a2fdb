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
	Scraper   ScraperConfig
	Enhancer  EnhancerConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser launched for each extraction.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth enables anti-bot-detection evasions before navigation.
	Stealth bool // default: true

	// BlockedResourceTypes lists resource types to block during rendering.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// ScraperConfig controls extraction behavior.
type ScraperConfig struct {
	// Timeout is the deadline for one full extraction (launch + navigation
	// + rendering + parsing).
	Timeout time.Duration // default: 30s

	// MaxTimeout caps the extraction deadline.
	MaxTimeout time.Duration // default: 120s

	// RetryDelay is the fixed pause before the single navigation retry.
	RetryDelay time.Duration // default: 500ms
}

// EnhancerConfig controls the description enhancement engine.
// The engine is enabled for its whole lifetime iff APIKey is non-empty.
type EnhancerConfig struct {
	// APIKey authenticates against the OpenAI-compatible API.
	APIKey string

	// Model is the chat model identifier.
	Model string // default: "gpt-4o-mini"

	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string // default: "https://api.openai.com/v1"

	// Timeout is the deadline for one enhancement call.
	Timeout time.Duration // default: 30s
}

// DatabaseConfig controls the PostgreSQL connection.
type DatabaseConfig struct {
	// URL is the postgres connection string. Required.
	URL string

	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int // default: 10
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
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
			Host: envOr("BRANDSIFT_HOST", "0.0.0.0"),
			Port: envIntOr("BRANDSIFT_PORT", 8080),
			Mode: envOr("BRANDSIFT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("BRANDSIFT_HEADLESS", true),
			NoSandbox:  envBoolOr("BRANDSIFT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("BRANDSIFT_BROWSER_BIN"),
			Stealth:    envBoolOr("BRANDSIFT_STEALTH", true),
			BlockedResourceTypes: envSliceOr("BRANDSIFT_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Scraper: ScraperConfig{
			Timeout:    envDurationOr("BRANDSIFT_SCRAPE_TIMEOUT", 30*time.Second),
			MaxTimeout: envDurationOr("BRANDSIFT_MAX_TIMEOUT", 120*time.Second),
			RetryDelay: envDurationOr("BRANDSIFT_RETRY_DELAY", 500*time.Millisecond),
		},
		Enhancer: EnhancerConfig{
			APIKey:  os.Getenv("BRANDSIFT_OPENAI_API_KEY"),
			Model:   envOr("BRANDSIFT_OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("BRANDSIFT_OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout: envDurationOr("BRANDSIFT_OPENAI_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envIntOr("BRANDSIFT_DB_MAX_CONNS", 10),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("BRANDSIFT_RATE_RPS", 5.0),
			Burst:             envIntOr("BRANDSIFT_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("BRANDSIFT_LOG_LEVEL", "info"),
			Format: envOr("BRANDSIFT_LOG_FORMAT", "json"),
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
