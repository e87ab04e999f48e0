package session

import (
	"fmt"

	sessionhttp "session-guard/internal/session/adapter/http"
	"session-guard/internal/session/adapter/security"
	"session-guard/internal/session/config"
	"session-guard/internal/session/usecase"
	"session-guard/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SessionModule wires cookie decryption, session extraction and routes together
type SessionModule struct {
	cipher     *security.CookieCipher
	extractor  usecase.SessionExtractorInterface
	middleware *sessionhttp.SessionMiddleware
	handler    *sessionhttp.SessionHTTPHandler
	config     *config.Config
}

// NewSessionModule creates a new session module instance
func NewSessionModule(cfg *config.Config, log logger.Logger) (*SessionModule, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cipher, err := security.NewCookieCipher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie cipher: %w", err)
	}

	extractor := usecase.NewSessionExtractor(cfg.CookieName, log)
	middleware := sessionhttp.NewSessionMiddleware(extractor)

	return &SessionModule{
		cipher:     cipher,
		extractor:  extractor,
		middleware: middleware,
		handler:    sessionhttp.NewSessionHTTPHandler(middleware),
		config:     cfg,
	}, nil
}

// RegisterMiddleware installs request ID, security headers and cookie
// decryption. It must run before any route that reads the session.
func (sm *SessionModule) RegisterMiddleware(router fiber.Router) {
	router.Use(sm.middleware.RequestID())
	router.Use(sm.middleware.SecurityHeaders())
	router.Use(sm.cipher.Middleware())
}

// RegisterRoutes registers session routes under the configured API prefix
func (sm *SessionModule) RegisterRoutes(router fiber.Router) {
	sm.handler.SetupSessionRoutes(router.Group(sm.config.APIPrefix))
}

// GetExtractor returns the session extractor for external access
func (sm *SessionModule) GetExtractor() usecase.SessionExtractorInterface {
	return sm.extractor
}

// GetMiddleware returns the session middleware
func (sm *SessionModule) GetMiddleware() *sessionhttp.SessionMiddleware {
	return sm.middleware
}

// GetCipher returns the cookie cipher
func (sm *SessionModule) GetCipher() *security.CookieCipher {
	return sm.cipher
}

// Stop performs cleanup when the module is shut down
func (sm *SessionModule) Stop() error {
	return nil
}
