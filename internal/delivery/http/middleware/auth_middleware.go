package middleware

import (
	"errors"

	"joinup/internal/session"

	"github.com/gofiber/fiber/v3"
)

const CtxSessionKey = "session"

type AuthMiddleware struct {
	sessions *session.Provider
}

func NewAuthMiddleware(sessions *session.Provider) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Middleware rejects requests without a valid access token and stores the
// caller's session for the handler.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		sess, err := m.sessions.FromAuthorization(c.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, session.ErrNoToken):
				return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
			case errors.Is(err, session.ErrTokenExpired):
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			default:
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			}
		}

		c.Locals(CtxSessionKey, sess)
		return c.Next()
	}
}

// SessionFrom returns the session stored by AuthMiddleware, or
// session.Anonymous.
func SessionFrom(c fiber.Ctx) session.Session {
	if sess, ok := c.Locals(CtxSessionKey).(session.Session); ok {
		return sess
	}
	return session.Anonymous
}
