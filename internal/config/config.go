package config

import (
	"os"
	"strings"
	"time"
)

const DefaultSealBaseURL = "https://app.sealsubscriptions.com/shopify/merchant/api"

type Config struct {
	// Server
	Port            string
	CORSOrigins     string
	ShutdownTimeout time.Duration

	// Seal (upstream subscription platform)
	SealToken        string
	SealBaseURL      string
	SealTimeout      time.Duration
	SealRequireToken bool

	// Proxy API
	BridgeBearer string

	// Observability
	LogLevel  string
	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "3000"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),

		// SEAL_MERCHANT_TOKEN is the bridge's name, SEAL_TOKEN the proxy's.
		SealToken:        strings.TrimSpace(getEnv("SEAL_MERCHANT_TOKEN", getEnv("SEAL_TOKEN", ""))),
		SealBaseURL:      strings.TrimRight(getEnv("SEAL_BASE_URL", DefaultSealBaseURL), "/"),
		SealTimeout:      parseDuration(getEnv("SEAL_TIMEOUT", "30s"), 30*time.Second),
		SealRequireToken: parseBool(getEnv("SEAL_REQUIRE_TOKEN", "false")),

		BridgeBearer: getEnv("BRIDGE_BEARER", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "production"),
	}
}

// SealCredential returns the upstream token, or a *ConfigurationError when
// none is configured. Callers resolve it per request so the listener can
// start and answer health checks without it.
func (c *Config) SealCredential() (string, error) {
	if c == nil || c.SealToken == "" {
		return "", &ConfigurationError{
			Key:     "SEAL_MERCHANT_TOKEN",
			Message: "missing SEAL_MERCHANT_TOKEN (or SEAL_TOKEN) in environment; set it in the .env file or the process manager environment",
		}
	}
	return c.SealToken, nil
}

func (c *Config) SealTokenConfigured() bool {
	return c != nil && c.SealToken != ""
}

// ConfigurationError reports a setting that must be provided by the operator.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
