package http

import (
	"context"
	"strconv"

	"session-guard/internal/session/domain/model"
	"session-guard/internal/session/usecase"
	"session-guard/internal/shared/contextkeys"
	apperrors "session-guard/internal/shared/errors"
	"session-guard/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// localsSessionKey is the c.Locals key holding the decoded *model.Session
const localsSessionKey = "session"

// FiberCookieJar exposes a Fiber request's cookies as a repository.CookieJar.
// Values are read after the encryptcookie middleware has decrypted them.
type FiberCookieJar struct {
	c *fiber.Ctx
}

// NewFiberCookieJar wraps c
func NewFiberCookieJar(c *fiber.Ctx) FiberCookieJar {
	return FiberCookieJar{c: c}
}

// Cookie implements repository.CookieJar. A cookie sent with an empty value,
// or blanked by encryptcookie after failing to decrypt, is present with "".
// When the name repeats, the first occurrence wins.
func (j FiberCookieJar) Cookie(name string) (string, bool) {
	var (
		value string
		found bool
	)
	j.c.Request().Header.VisitAllCookie(func(key, val []byte) {
		if !found && string(key) == name {
			value = string(val)
			found = true
		}
	})
	return value, found
}

// SessionMiddleware runs the session extractor as an explicit request step
type SessionMiddleware struct {
	extractor usecase.SessionExtractorInterface
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(extractor usecase.SessionExtractorInterface) *SessionMiddleware {
	return &SessionMiddleware{
		extractor: extractor,
	}
}

// SecurityHeaders adds security headers
func (m *SessionMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Cache-Control", "no-store")
		return c.Next()
	}
}

// RequestID tags each request with a UUID
func (m *SessionMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequireSession rejects requests without a decodable session cookie with 401
func (m *SessionMiddleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := m.extract(c)
		if err != nil {
			return unauthorized(c)
		}

		attach(c, sess)
		return c.Next()
	}
}

// OptionalSession attaches the session when one decodes and otherwise continues anonymously
func (m *SessionMiddleware) OptionalSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := m.extract(c)
		if err == nil {
			attach(c, sess)
		}
		return c.Next()
	}
}

// WithSession adapts a handler that takes the decoded session as a parameter.
// A session already attached by RequireSession is reused; otherwise the
// cookie is extracted here and a failure is answered with 401.
func (m *SessionMiddleware) WithSession(handler func(c *fiber.Ctx, sess *model.Session) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetSession(c)
		if !ok {
			var err error
			sess, err = m.extract(c)
			if err != nil {
				return unauthorized(c)
			}
			attach(c, sess)
		}

		return handler(c, sess)
	}
}

func (m *SessionMiddleware) extract(c *fiber.Ctx) (*model.Session, error) {
	return m.extractor.Extract(userContext(c), NewFiberCookieJar(c))
}

// userContext returns the request's user context with the request ID copied in
func userContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id, ok := c.Locals(string(contextkeys.RequestIDKey)).(string); ok && id != "" && !utils.HasRequestID(ctx) {
		ctx = utils.WithRequestID(ctx, id)
		c.SetUserContext(ctx)
	}
	return ctx
}

func attach(c *fiber.Ctx, sess *model.Session) {
	c.Locals(localsSessionKey, sess)

	ctx := userContext(c)
	ctx = context.WithValue(ctx, contextkeys.SessionKey, sess)
	ctx = utils.WithUserID(ctx, strconv.FormatInt(int64(sess.ID), 10))
	c.SetUserContext(ctx)
}

// unauthorized writes the single 401 response. Whatever the extractor
// returned, the client always sees the same body.
func unauthorized(c *fiber.Ctx) error {
	appErr := apperrors.NewUnauthorizedError()
	return c.Status(appErr.HTTPCode).JSON(fiber.Map{
		"error": appErr.Message,
		"type":  appErr.Type,
		"code":  appErr.Code,
	})
}

// GetSession returns the session attached to c, if any
func GetSession(c *fiber.Ctx) (*model.Session, bool) {
	sess, ok := c.Locals(localsSessionKey).(*model.Session)
	return sess, ok && sess != nil
}

// SessionFromContext returns the session stored in ctx by the middleware
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	sess, ok := ctx.Value(contextkeys.SessionKey).(*model.Session)
	return sess, ok && sess != nil
}

// HasSession reports whether a session was attached to c
func HasSession(c *fiber.Ctx) bool {
	_, ok := GetSession(c)
	return ok
}
