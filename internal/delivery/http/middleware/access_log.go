package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AccessLogMiddleware struct {
	logger zerolog.Logger
}

func NewAccessLogMiddleware(logger zerolog.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: logger.With().Str("component", "access").Logger()}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("X-Request-ID", rid)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil && status < fiber.StatusBadRequest {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		evt := m.logger.Info()
		switch {
		case status >= 500:
			evt = m.logger.Error()
		case status >= 400:
			evt = m.logger.Warn()
		}

		evt.
			Str("rid", rid).
			Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("req_bytes", c.Request().Header.ContentLength()).
			Int("resp_bytes", len(c.Response().Body())).
			Str("ua", c.Get("User-Agent")).
			Msg("http access")

		return err
	}
}
