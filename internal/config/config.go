package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Environment variable names read by Load.
//
//nolint:gosec // names, not credentials
const (
	EnvEnvironment            = "ENVIRONMENT"
	EnvPort                   = "PORT"
	EnvHotpepperGourmetAPIKey = "HOTPEPPER_GOURMET_API_KEY"
	EnvDevCORSProxyURL        = "DEV_CORS_PROXY_URL"
	EnvSentryDSN              = "SENTRY_DSN"
	EnvLogLevel               = "LOG_LEVEL"
	EnvCORSAllowedOrigins     = "CORS_ALLOWED_ORIGINS"
	EnvCloudWatchEnabled      = "CLOUDWATCH_ENABLED"
)

// ErrMissingAPIKey is returned by Validate when a production config has no API key.
var ErrMissingAPIKey = errors.New("HOTPEPPER_GOURMET_API_KEY is not set")

// Config holds the application configuration.
// It is built once at startup and shared read-only with every handler.
type Config struct {
	// Environment
	Environment Mode
	Port        string

	// HotPepper Gourmet
	HotpepperGourmetAPIKey string // handed to the front end, never logged
	DevCORSProxyURL        string // only meaningful outside production

	// Observability
	SentryDSN         string
	LogLevel          string
	CloudWatchEnabled bool

	// CORS
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Environment:            ParseMode(getEnv(EnvEnvironment, string(ModeDevelopment))),
		Port:                   getEnv(EnvPort, "8080"),
		HotpepperGourmetAPIKey: getEnv(EnvHotpepperGourmetAPIKey, ""),
		DevCORSProxyURL:        getEnv(EnvDevCORSProxyURL, ""),
		SentryDSN:              getEnv(EnvSentryDSN, ""),
		LogLevel:               getEnv(EnvLogLevel, "info"),
		CloudWatchEnabled:      getEnv(EnvCloudWatchEnabled, "false") == "true",
		AllowedOrigins:         splitList(getEnv(EnvCORSAllowedOrigins, "*")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WithMode returns a copy of the config running in the given mode.
// Used to apply a mode baked in at build time over the ENVIRONMENT value.
func (c *Config) WithMode(mode Mode) *Config {
	clone := *c
	clone.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	clone.Environment = mode
	return &clone
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment.IsProduction()
}

// Validate applies the startup policy for missing values.
// Production refuses to start without an API key; development serves whatever is set.
func (c *Config) Validate() error {
	if c.IsProduction() && c.HotpepperGourmetAPIKey == "" {
		return ErrMissingAPIKey
	}

	if c.DevCORSProxyURL != "" {
		u, err := url.Parse(c.DevCORSProxyURL)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDevCORSProxyURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q must be an absolute URL", EnvDevCORSProxyURL, c.DevCORSProxyURL)
		}
	}

	return nil
}

// APIKeyConfigured reports whether a non-blank API key is set.
func (c *Config) APIKeyConfigured() bool {
	return strings.TrimSpace(c.HotpepperGourmetAPIKey) != ""
}

// ProxyConfigured reports whether a dev CORS proxy is set. A proxy is never
// reported as in use in production.
func (c *Config) ProxyConfigured() bool {
	return !c.IsProduction() && strings.TrimSpace(c.DevCORSProxyURL) != ""
}
