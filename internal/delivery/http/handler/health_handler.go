package handler

import (
	"context"
	"time"

	"joinup/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the database as required and every other
// dependency as informational.
type HealthHandler struct {
	db     Pinger
	others map[string]Pinger
}

func NewHealthHandler(db Pinger, others map[string]Pinger) *HealthHandler {
	return &HealthHandler{db: db, others: others}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := fiber.StatusOK

	checks["database"] = "ok"
	if h.db == nil {
		checks["database"] = "not configured"
		status = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}

	for name, p := range h.others {
		checks[name] = "ok"
		if p == nil {
			checks[name] = "disabled"
			continue
		}
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
		}
	}

	msg := "healthy"
	if status != fiber.StatusOK {
		msg = "unhealthy"
	}
	return response.Success(c, status, msg, checks)
}
