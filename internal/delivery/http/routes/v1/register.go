package v1

import (
	"joinup/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything mounted under /api/v1. RequireAuth guards the
// routes that need a session.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Student     *handler.StudentHandler
	Project     *handler.ProjectHandler
	Application *handler.ApplicationHandler
	Saved       *handler.SavedHandler
	Dashboard   *handler.DashboardHandler
	Health      *handler.HealthHandler

	RequireAuth fiber.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	if h.User != nil {
		h.User.RegisterRoutes(r.Group("/users"), h.RequireAuth)
	}
	RegisterProjects(r.Group("/projects"), h.Project, h.Application, h.RequireAuth)

	if h.Student != nil {
		h.Student.RegisterRoutes(r.Group("/students"))
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(r.Group("/applications"), h.RequireAuth)
	}
	if h.Saved != nil {
		h.Saved.RegisterRoutes(r.Group("/saved"), h.RequireAuth)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r, h.RequireAuth)
	}
}
