package usecase

import (
	"context"

	"session-guard/internal/session/domain/model"
	"session-guard/internal/session/domain/repository"
	apperrors "session-guard/internal/shared/errors"
	"session-guard/internal/shared/logger"
	"session-guard/internal/shared/utils"
)

// Rejection reasons. These only ever reach the server log.
const (
	ReasonMissing   = "missing"
	ReasonEmpty     = "empty"
	ReasonMalformed = "malformed"
)

const componentName = "session-extractor"

// OperationExtract tags rejection log entries.
const OperationExtract = "extract"

// SessionExtractorInterface defines the contract for recovering a session from a request.
type SessionExtractorInterface interface {
	Extract(ctx context.Context, jar repository.CookieJar) (*model.Session, error)
	CookieName() string
}

// SessionExtractor decodes the session cookie into a model.Session.
//
// It performs a syntactic decode only: no expiry, revocation or timestamp
// checks are made. It holds no mutable state and is safe for concurrent use.
type SessionExtractor struct {
	cookieName string
	log        logger.Logger
}

// NewSessionExtractor creates an extractor reading the cookie named cookieName.
// A nil log discards rejection diagnostics.
func NewSessionExtractor(cookieName string, log logger.Logger) *SessionExtractor {
	return &SessionExtractor{
		cookieName: cookieName,
		log:        log,
	}
}

// CookieName returns the name of the session cookie this extractor reads.
func (e *SessionExtractor) CookieName() string {
	return e.cookieName
}

// Extract returns the session carried by jar, or the single unauthorized
// error when the cookie is absent, empty or does not decode. The returned
// error never says which of those happened.
func (e *SessionExtractor) Extract(ctx context.Context, jar repository.CookieJar) (*model.Session, error) {
	if jar == nil {
		return nil, e.reject(ctx, ReasonMissing, nil)
	}

	value, ok := jar.Cookie(e.cookieName)
	if !ok {
		return nil, e.reject(ctx, ReasonMissing, nil)
	}
	if value == "" {
		return nil, e.reject(ctx, ReasonEmpty, nil)
	}

	sess, err := model.Decode(value)
	if err != nil {
		return nil, e.reject(ctx, ReasonMalformed, err)
	}

	return sess, nil
}

func (e *SessionExtractor) reject(ctx context.Context, reason string, cause error) error {
	if e.log != nil {
		if ctx == nil {
			ctx = context.Background()
		}
		fields := map[string]interface{}{
			"reason": reason,
			"cookie": e.cookieName,
		}
		if cause != nil {
			fields["error"] = cause.Error()
		}
		e.log.WithContext(utils.WithOperation(ctx, OperationExtract)).WithComponent(componentName).WithFields(fields).Debug("session rejected")
	}
	return apperrors.NewUnauthorizedError().WithComponent(componentName)
}
