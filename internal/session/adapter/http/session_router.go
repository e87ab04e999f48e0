package http

import (
	"session-guard/internal/session/domain/model"

	"github.com/gofiber/fiber/v2"
)

// SessionHTTPHandler serves read-only views of the request's session cookie
type SessionHTTPHandler struct {
	middleware *SessionMiddleware
}

// NewSessionHTTPHandler creates a new session HTTP handler
func NewSessionHTTPHandler(middleware *SessionMiddleware) *SessionHTTPHandler {
	return &SessionHTTPHandler{
		middleware: middleware,
	}
}

// SessionResponse is the public view of a decoded session. AuthKey is never echoed.
type SessionResponse struct {
	ID       int32  `json:"id"`
	Email    string `json:"email"`
	IssuedAt int64  `json:"issued_at"`
}

// SetupSessionRoutes registers the session routes on router
func (h *SessionHTTPHandler) SetupSessionRoutes(router fiber.Router) {
	router.Get("/session", h.middleware.WithSession(h.GetCurrentSession))
	router.Get("/session/status", h.middleware.OptionalSession(), h.GetSessionStatus)
}

// GetCurrentSession returns the decoded session cookie
func (h *SessionHTTPHandler) GetCurrentSession(c *fiber.Ctx, sess *model.Session) error {
	return c.JSON(toResponse(sess))
}

// GetSessionStatus reports whether the request carries a decodable session cookie.
// A decodable cookie does not mean the session is still valid.
func (h *SessionHTTPHandler) GetSessionStatus(c *fiber.Ctx) error {
	sess, ok := GetSession(c)
	if !ok {
		return c.JSON(fiber.Map{"present": false})
	}
	return c.JSON(fiber.Map{
		"present": true,
		"session": toResponse(sess),
	})
}

func toResponse(sess *model.Session) SessionResponse {
	return SessionResponse{
		ID:       sess.ID,
		Email:    sess.Email,
		IssuedAt: sess.IssuedAt,
	}
}
