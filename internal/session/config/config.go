package config

import (
	"fmt"
	"strings"

	apperrors "session-guard/internal/shared/errors"

	"github.com/caarlos0/env/v6"
)

const (
	// DefaultCookieName is the process-wide session cookie name.
	DefaultCookieName = "session"

	minSecretLength = 32
)

// Config holds all configuration for the session module.
type Config struct {
	// Cookie Configuration
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	// CookieSecret is stretched into the cookie encryption key with HKDF.
	CookieSecret string `env:"COOKIE_SECRET"`
	// CookieEncryptionKey is a base64 AES key; when set it is used as-is.
	CookieEncryptionKey string `env:"COOKIE_ENCRYPTION_KEY"`
	// CookieExcept lists cookies left untouched by the decryption middleware.
	CookieExcept []string `env:"COOKIE_EXCEPT" envSeparator:"," envDefault:"csrf_"`

	// HTTP Configuration
	APIPrefix string `env:"API_PREFIX" envDefault:"/api/v1"`

	// Logging Configuration
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	LogBackend string `env:"LOG_BACKEND" envDefault:"logrus"`
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the module cannot run with.
func (c *Config) Validate() error {
	c.CookieName = strings.TrimSpace(c.CookieName)
	if c.CookieName == "" {
		return apperrors.NewConfigurationError("session_cookie_name is required")
	}
	if strings.ContainsAny(c.CookieName, "=;, \t\r\n\"") {
		return apperrors.NewConfigurationError("session_cookie_name contains invalid characters")
	}

	if c.CookieEncryptionKey == "" {
		if c.CookieSecret == "" {
			return apperrors.NewConfigurationError("one of cookie_secret or cookie_encryption_key is required")
		}
		if len(c.CookieSecret) < minSecretLength {
			return apperrors.NewConfigurationError(fmt.Sprintf("cookie_secret must be at least %d characters long", minSecretLength))
		}
	}

	for _, name := range c.CookieExcept {
		if strings.TrimSpace(name) == c.CookieName {
			return apperrors.NewConfigurationError("session cookie cannot be excluded from decryption")
		}
	}

	if c.APIPrefix == "" {
		c.APIPrefix = "/"
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		c.APIPrefix = "/" + c.APIPrefix
	}

	return nil
}
